package dal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

// RankingsDAL is a league-hosted ranking table that also serves as a
// rankings.Source.
type RankingsDAL interface {
	rankings.Source
	rankings.Pinger
	UpsertPlayers(ctx context.Context, players []rankings.SourcePlayer) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// sqlRankings holds the dialect-independent queries over player_rankings.
type sqlRankings struct {
	db   *sql.DB
	name string
	// bind renders the n-th (1-based) placeholder for the dialect.
	bind func(n int) string
}

const selectRankings = `
	SELECT espn_id, full_name, position_id, pro_team_id, source_rank, bye_week, pts_per_game
	FROM player_rankings
	ORDER BY source_rank IS NULL, source_rank, espn_id
`

func (s *sqlRankings) Name() string { return s.name }

func (s *sqlRankings) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlRankings) FetchPlayers(ctx context.Context) ([]rankings.SourcePlayer, error) {
	rows, err := s.db.QueryContext(ctx, selectRankings)
	if err != nil {
		return nil, fmt.Errorf("query player_rankings: %w", err)
	}
	defer rows.Close()

	var players []rankings.SourcePlayer
	for rows.Next() {
		var (
			p    rankings.SourcePlayer
			rank sql.NullFloat64
			bye  sql.NullInt64
			ppg  sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.FullName, &p.PositionCode, &p.TeamCode, &rank, &bye, &ppg); err != nil {
			return nil, fmt.Errorf("scan player_rankings: %w", err)
		}
		if rank.Valid {
			p.Rank = rank.Float64
		}
		if bye.Valid {
			p.ByeWeek = int(bye.Int64)
		}
		if ppg.Valid {
			v := ppg.Float64
			p.PointsPerGame = &v
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *sqlRankings) UpsertPlayers(ctx context.Context, players []rankings.SourcePlayer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	b := s.bind
	query := fmt.Sprintf(`
		INSERT INTO player_rankings (espn_id, full_name, position_id, pro_team_id, source_rank, bye_week, pts_per_game, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (espn_id) DO UPDATE SET
			full_name = excluded.full_name,
			position_id = excluded.position_id,
			pro_team_id = excluded.pro_team_id,
			source_rank = excluded.source_rank,
			bye_week = excluded.bye_week,
			pts_per_game = excluded.pts_per_game,
			updated_at = excluded.updated_at
	`, b(1), b(2), b(3), b(4), b(5), b(6), b(7), b(8))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range players {
		var rank, bye, ppg any
		if p.Rank != 0 {
			rank = p.Rank
		}
		if p.ByeWeek != 0 {
			bye = p.ByeWeek
		}
		if p.PointsPerGame != nil {
			ppg = *p.PointsPerGame
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.FullName, p.PositionCode, p.TeamCode, rank, bye, ppg, now); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *sqlRankings) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM player_rankings").Scan(&n)
	return n, err
}

func (s *sqlRankings) Close() error {
	return s.db.Close()
}

func questionMark(int) string { return "?" }

func dollar(n int) string { return "$" + fmt.Sprint(n) }

// execSchema runs each ;-separated statement; lib/pq handles multi-statement
// strings but keeping statements separate gives clearer errors.
func execSchema(ctx context.Context, db *sql.DB, schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
