package dal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// PostgresDAL reads rankings from a shared PostgreSQL database
type PostgresDAL struct {
	sqlRankings
}

// PostgresOptions tunes connection retries at startup.
type PostgresOptions struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NewPostgresDAL connects to Postgres, retrying the initial ping to ride out
// DNS propagation in Kubernetes, and creates the rankings table.
func NewPostgresDAL(ctx context.Context, connString string, opts PostgresOptions) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// CloudNativePG defaults to max_connections=100; stay well below it.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if opts.MaxRetries < 1 {
		opts.MaxRetries = 5
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 5 * time.Second
	}

	var lastErr error
	for i := 0; i < opts.MaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			break
		}

		logger.Warn("Postgres ping failed", "attempt", i+1, "error", lastErr)
		if i < opts.MaxRetries-1 {
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(opts.RetryDelay):
			}
		}
	}

	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", opts.MaxRetries, lastErr)
	}

	dal := &PostgresDAL{sqlRankings{db: db, name: "postgres", bind: dollar}}

	if err := dal.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

func (p *PostgresDAL) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS player_rankings (
		espn_id BIGINT PRIMARY KEY,
		full_name TEXT NOT NULL,
		position_id INTEGER NOT NULL DEFAULT 0,
		pro_team_id INTEGER NOT NULL DEFAULT 0,
		source_rank DOUBLE PRECISION,
		bye_week INTEGER,
		pts_per_game DOUBLE PRECISION,
		updated_at BIGINT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_player_rankings_rank ON player_rankings(source_rank)
	`
	return execSchema(ctx, p.db, schema)
}
