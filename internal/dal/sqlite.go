package dal

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDAL reads rankings from a local SQLite file
type SQLiteDAL struct {
	sqlRankings
}

// NewSQLiteDAL opens (and if needed creates) the rankings table at dbPath.
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases consistent across calls.
	db.SetMaxOpenConns(1)

	dal := &SQLiteDAL{sqlRankings{db: db, name: "sqlite", bind: questionMark}}

	if err := dal.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

func (s *SQLiteDAL) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS player_rankings (
		espn_id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		position_id INTEGER NOT NULL DEFAULT 0,
		pro_team_id INTEGER NOT NULL DEFAULT 0,
		source_rank REAL,
		bye_week INTEGER,
		pts_per_game REAL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_player_rankings_rank ON player_rankings(source_rank);
	`
	return execSchema(ctx, s.db, schema)
}
