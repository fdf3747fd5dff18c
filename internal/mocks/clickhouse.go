package mocks

import (
	"context"
	"slices"
	"strconv"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/randutil"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

// MockADPSource stands in for the ClickHouse ADP feed in local development.
// It serves the static board with every ADP moved by up to ±10%, so the
// order shifts a little between cache windows like real mock-draft data.
type MockADPSource struct {
	base []rankings.SourcePlayer
	// jitter returns a percentage offset in [-10, 10).
	jitter func() int
}

// NewMockADPSource creates a mock ADP source
func NewMockADPSource() *MockADPSource {
	logger.Info("Using MOCK ClickHouse ADP source for local development")
	return &MockADPSource{
		base:   SourceRecords(rankings.FallbackPlayers()),
		jitter: func() int { return randutil.Between(-10, 10) },
	}
}

func (m *MockADPSource) Name() string { return "clickhouse-mock" }

// FetchPlayers returns the jittered board ordered by ADP.
func (m *MockADPSource) FetchPlayers(ctx context.Context) ([]rankings.SourcePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := slices.Clone(m.base)
	for i := range out {
		out[i].Rank *= 1 + float64(m.jitter())/100
	}
	slices.SortStableFunc(out, func(a, b rankings.SourcePlayer) int {
		switch {
		case a.Rank < b.Rank:
			return -1
		case a.Rank > b.Rank:
			return 1
		}
		return 0
	})
	return out, nil
}

func (m *MockADPSource) Ping(context.Context) error { return nil }

// Close is a no-op for mock client
func (m *MockADPSource) Close() error { return nil }

// SourceRecords turns a ranked board back into feed records, the shape the
// live sources produce.
func SourceRecords(players []models.Player) []rankings.SourcePlayer {
	out := make([]rankings.SourcePlayer, 0, len(players))
	for _, p := range players {
		id, _ := strconv.ParseInt(p.ID, 10, 64)
		ppg := float64(p.ProjectedPoints) / rankings.SeasonGames
		out = append(out, rankings.SourcePlayer{
			ID:            id,
			FullName:      p.Name,
			PositionCode:  rankings.CodeForPosition(p.Position),
			TeamCode:      rankings.CodeForTeam(p.Team),
			Rank:          p.ADP,
			ByeWeek:       p.Bye,
			PointsPerGame: &ppg,
		})
	}
	return out
}
