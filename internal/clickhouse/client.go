package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

// DefaultWindowDays is how far back mock-draft picks count towards ADP.
const DefaultWindowDays = 30

// Config holds ClickHouse connection settings.
type Config struct {
	Addr       string
	Database   string
	Username   string
	Password   string
	WindowDays int
}

// Client ranks players by average draft position across recent mock drafts
type Client struct {
	conn       driver.Conn
	windowDays int
}

// NewClient creates a new ClickHouse client
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	window := cfg.WindowDays
	if window <= 0 {
		window = DefaultWindowDays
	}

	return &Client{conn: conn, windowDays: window}, nil
}

// adpQuery aggregates mock_draft_picks into one row per player, best ADP
// first. Casts pin the column types to what Scan expects.
const adpQuery = `
	SELECT
		toInt64(espn_id) AS id,
		any(full_name) AS full_name,
		toInt32(any(position_id)) AS position_id,
		toInt32(any(pro_team_id)) AS pro_team_id,
		avg(overall_pick) AS adp,
		toInt32(any(bye_week)) AS bye_week,
		avgOrNull(pts_per_game) AS pts_per_game
	FROM mock_draft_picks
	WHERE drafted_at >= now() - INTERVAL ? DAY
	GROUP BY espn_id
	ORDER BY adp ASC
`

func (c *Client) Name() string { return "clickhouse" }

// FetchPlayers returns players ordered by average draft position.
func (c *Client) FetchPlayers(ctx context.Context) ([]rankings.SourcePlayer, error) {
	rows, err := c.conn.Query(ctx, adpQuery, c.windowDays)
	if err != nil {
		return nil, fmt.Errorf("query mock_draft_picks: %w", err)
	}
	defer rows.Close()

	return scanADP(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanADP(rows rowScanner) ([]rankings.SourcePlayer, error) {
	var players []rankings.SourcePlayer
	for rows.Next() {
		var (
			id             int64
			name           string
			pos, team, bye int32
			adp            float64
			ppg            *float64
		)
		if err := rows.Scan(&id, &name, &pos, &team, &adp, &bye, &ppg); err != nil {
			return nil, err
		}
		players = append(players, rankings.SourcePlayer{
			ID:            id,
			FullName:      name,
			PositionCode:  int(pos),
			TeamCode:      int(team),
			Rank:          adp,
			ByeWeek:       int(bye),
			PointsPerGame: ppg,
		})
	}
	return players, rows.Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
