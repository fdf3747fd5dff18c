package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

func newLoadedStore(t *testing.T, settings models.DraftSettings, opts ...Option) *Store {
	t.Helper()
	s := New(settings, opts...)
	res, err := s.Bootstrap(context.Background(), rankings.NewProvider(nil))
	require.NoError(t, err)
	require.Equal(t, rankings.OriginFallback, res.Origin)
	return s
}

func TestBootstrapSeedsPlayersAndTeams(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())

	state, version := s.Snapshot()
	assert.Equal(t, uint64(1), version)
	assert.Len(t, state.Players, rankings.FallbackCount)
	assert.Len(t, state.FilteredPlayers, rankings.FallbackCount)
	require.Len(t, state.Teams, 12)
	assert.Equal(t, "team-1", state.Teams[0].ID)
	assert.Equal(t, 1, state.CurrentPick)
	assert.False(t, state.IsDraftStarted)
}

func TestDispatchBumpsVersionAndPublishes(t *testing.T) {
	bus := pubsub.NewMemoryBus(10)
	s := newLoadedStore(t, models.DefaultSettings(), WithBus(bus))

	state, version, err := s.Dispatch(context.Background(), draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, state.CurrentPick)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, uint64(2), s.Version())

	events := bus.Replay(10)
	require.Len(t, events, 2)
	assert.Equal(t, EventBootstrap, events[0].Type)
	assert.Equal(t, "draft:DRAFT_PLAYER", events[1].Type)
	assert.Equal(t, uint64(2), events[1].Version)
	assert.Equal(t, "1", events[1].Payload["playerId"])
	assert.Equal(t, 1, events[1].Payload["drafted"])
}

func TestDispatchRejectedLeavesStateAlone(t *testing.T) {
	bus := pubsub.NewMemoryBus(10)
	s := newLoadedStore(t, models.DefaultSettings(), WithBus(bus))
	before, version := s.Snapshot()

	_, _, err := s.Dispatch(context.Background(), draft.DraftPlayer{PlayerID: "999", TeamID: "team-1"})
	require.ErrorIs(t, err, draft.ErrPlayerNotFound)

	_, _, err = s.Dispatch(context.Background(), draft.UndoLastPick{})
	require.ErrorIs(t, err, draft.ErrNothingToUndo)

	after, afterVersion := s.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, version, afterVersion)
	assert.Equal(t, 1, bus.MessageCount())
}

func TestDispatchNoopKeepsVersion(t *testing.T) {
	bus := pubsub.NewMemoryBus(10)
	s := newLoadedStore(t, models.DefaultSettings(), WithBus(bus))
	ctx := context.Background()

	before, version := s.Snapshot()
	state, got, err := s.Dispatch(ctx, draft.SetPlayers{Players: []models.Player{}})
	require.NoError(t, err)
	assert.Equal(t, version, got)
	assert.Equal(t, before, state)

	_, started, err := s.Dispatch(ctx, draft.StartDraft{})
	require.NoError(t, err)
	assert.Equal(t, version+1, started)

	_, again, err := s.Dispatch(ctx, draft.StartDraft{})
	require.NoError(t, err)
	assert.Equal(t, started, again)
	assert.Equal(t, started, s.Version())

	var types []string
	for _, e := range bus.Replay(10) {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{EventBootstrap, "draft:START_DRAFT"}, types)
}

func TestDraftNextReturnsCommittedVersion(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())
	ctx := context.Background()

	state, version, err := s.DraftNext(ctx, "1", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), version, "start and pick each commit")

	_, _, err = s.Dispatch(ctx, draft.SetSearchQuery{Query: "chase"})
	require.NoError(t, err)
	assert.Equal(t, 2, state.CurrentPick)
	assert.Equal(t, uint64(4), s.Version())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())

	state, _ := s.Snapshot()
	state.Players[0].Name = "changed"
	state.Teams[0].Players = append(state.Teams[0].Players, models.Player{ID: "x"})

	fresh, _ := s.Snapshot()
	assert.Equal(t, "Christian McCaffrey", fresh.Players[0].Name)
	assert.Empty(t, fresh.Teams[0].Players)
}

func TestDraftNextFollowsSnakeOrder(t *testing.T) {
	settings := models.DefaultSettings()
	settings.LeagueSize = 4
	s := newLoadedStore(t, settings)
	ctx := context.Background()

	wantTeams := []string{"team-1", "team-2", "team-3", "team-4", "team-4", "team-3"}
	for i, teamID := range wantTeams {
		state, _, err := s.DraftNext(ctx, rankings.FallbackPlayers()[i].ID, nil)
		require.NoError(t, err, "pick %d", i+1)

		p := state.Players[state.PlayerIndex(rankings.FallbackPlayers()[i].ID)]
		assert.Equal(t, teamID, p.DraftedBy, "pick %d", i+1)
		assert.Equal(t, i+1, p.DraftPick)
		assert.True(t, state.IsDraftStarted)
	}

	state, _ := s.Snapshot()
	assert.Equal(t, 7, state.CurrentPick)
	assert.Equal(t, 2, state.CurrentRound)
	assert.Nil(t, state.Players[0].AuctionPrice)
}

func TestDraftNextStartsDraftOnce(t *testing.T) {
	bus := pubsub.NewMemoryBus(10)
	s := newLoadedStore(t, models.DefaultSettings(), WithBus(bus))

	_, _, err := s.DraftNext(context.Background(), "1", nil)
	require.NoError(t, err)
	_, _, err = s.DraftNext(context.Background(), "2", nil)
	require.NoError(t, err)

	var types []string
	for _, e := range bus.Replay(10) {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{EventBootstrap, "draft:START_DRAFT", "draft:DRAFT_PLAYER", "draft:DRAFT_PLAYER"}, types)
}

func TestDraftNextAuctionPrice(t *testing.T) {
	settings := models.DefaultSettings()
	settings.IsAuction = true
	s := newLoadedStore(t, settings, WithRandomPrice(func() int { return 42 }))
	ctx := context.Background()

	state, _, err := s.DraftNext(ctx, "1", nil)
	require.NoError(t, err)
	require.NotNil(t, state.Players[0].AuctionPrice)
	assert.Equal(t, 42, *state.Players[0].AuctionPrice)
	assert.Equal(t, 158, state.Teams[0].RemainingBudget)

	price := 7
	state, _, err = s.DraftNext(ctx, "2", &price)
	require.NoError(t, err)
	assert.Equal(t, 7, *state.Players[1].AuctionPrice)
	assert.Equal(t, 193, state.Teams[1].RemainingBudget)
}

func TestDraftNextDefaultAuctionPriceRange(t *testing.T) {
	settings := models.DefaultSettings()
	settings.IsAuction = true
	s := newLoadedStore(t, settings)

	state, _, err := s.DraftNext(context.Background(), "1", nil)
	require.NoError(t, err)
	price := *state.Players[0].AuctionPrice
	assert.GreaterOrEqual(t, price, 10)
	assert.Less(t, price, 60)
}

func TestDraftNextErrors(t *testing.T) {
	ctx := context.Background()

	empty := New(models.DefaultSettings())
	_, _, err := empty.DraftNext(ctx, "1", nil)
	assert.ErrorIs(t, err, ErrNoTeamOnClock)
	assert.Equal(t, uint64(0), empty.Version(), "failed DraftNext must not start the draft")

	s := newLoadedStore(t, models.DefaultSettings())
	_, _, err = s.Dispatch(ctx, draft.SetCurrentPick{Pick: 500})
	require.NoError(t, err)
	_, _, err = s.DraftNext(ctx, "1", nil)
	assert.ErrorIs(t, err, ErrNoTeamOnClock)

	s = newLoadedStore(t, models.DefaultSettings())
	_, _, err = s.DraftNext(ctx, "nope", nil)
	assert.ErrorIs(t, err, draft.ErrPlayerNotFound)
	state, _ := s.Snapshot()
	assert.False(t, state.IsDraftStarted)
}

func TestResetStartsOver(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())
	ctx := context.Background()

	_, _, err := s.DraftNext(ctx, "1", nil)
	require.NoError(t, err)
	_, _, err = s.Dispatch(ctx, draft.SetSearchQuery{Query: "mia"})
	require.NoError(t, err)

	_, err = s.Reset(ctx, rankings.NewProvider(nil))
	require.NoError(t, err)

	state, _ := s.Snapshot()
	assert.Zero(t, state.DraftedCount())
	assert.Empty(t, state.History)
	assert.Empty(t, state.SearchQuery)
	assert.Equal(t, 1, state.CurrentPick)
	assert.False(t, state.IsDraftStarted)
	assert.Len(t, state.FilteredPlayers, rankings.FallbackCount)
}

func TestResetKeepsSettings(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())
	ctx := context.Background()

	settings := models.DefaultSettings()
	settings.LeagueSize = 8
	_, _, err := s.Dispatch(ctx, draft.SetSettings{Settings: settings})
	require.NoError(t, err)

	_, err = s.Reset(ctx, rankings.NewProvider(nil))
	require.NoError(t, err)

	state, _ := s.Snapshot()
	assert.Len(t, state.Teams, 8)
}

func TestCanceledContext(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Dispatch(ctx, draft.StartDraft{})
	assert.True(t, errors.Is(err, context.Canceled))
	_, _, err = s.DraftNext(ctx, "1", nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConcurrentDraftNextAppliesEveryPickOnce(t *testing.T) {
	s := newLoadedStore(t, models.DefaultSettings())
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, p := range rankings.FallbackPlayers()[:24] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, err := s.DraftNext(ctx, id, nil)
			assert.NoError(t, err)
		}(p.ID)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DraftNext calls did not finish")
	}

	state, _ := s.Snapshot()
	assert.Equal(t, 24, state.DraftedCount())
	assert.Equal(t, 25, state.CurrentPick)
	assert.Equal(t, 3, state.CurrentRound)

	seen := map[int]bool{}
	for _, h := range state.History {
		assert.False(t, seen[h.Pick], "pick %d used twice", h.Pick)
		seen[h.Pick] = true
	}
	for _, team := range state.Teams {
		assert.Len(t, team.Players, 2, team.ID)
	}
}
