package mocks

import (
	"context"
	"fmt"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/dal"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

// MockPostgresDAL provides a mock Postgres rankings table using SQLite for
// local development. An empty table is seeded with the static board.
type MockPostgresDAL struct {
	dal.RankingsDAL
}

// NewMockPostgresDAL creates a mock Postgres DAL using SQLite
func NewMockPostgresDAL(ctx context.Context, sqliteFile string) (*MockPostgresDAL, error) {
	logger.Info("Using MOCK Postgres (SQLite) for local development", "file", sqliteFile)

	sqliteDAL, err := dal.NewSQLiteDAL(sqliteFile)
	if err != nil {
		return nil, err
	}

	n, err := sqliteDAL.Count(ctx)
	if err != nil {
		sqliteDAL.Close()
		return nil, fmt.Errorf("count rankings: %w", err)
	}
	if n == 0 {
		if err := sqliteDAL.UpsertPlayers(ctx, SourceRecords(rankings.FallbackPlayers())); err != nil {
			sqliteDAL.Close()
			return nil, fmt.Errorf("seed rankings: %w", err)
		}
		logger.Info("Seeded mock Postgres rankings", "players", rankings.FallbackCount)
	}

	return &MockPostgresDAL{RankingsDAL: sqliteDAL}, nil
}

func (m *MockPostgresDAL) Name() string { return "postgres-mock" }
