package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/randutil"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

// ErrNoTeamOnClock is returned by DraftNext when no team owns the current pick.
var ErrNoTeamOnClock = errors.New("no team on the clock")

const (
	EventBootstrap = "draft:BOOTSTRAP"
	EventReset     = "draft:RESET"
)

// RankingsProvider is the part of rankings.Provider the store needs.
type RankingsProvider interface {
	PlayerRankings(ctx context.Context) rankings.Result
}

// Store owns one draft. All transitions go through the reducer under a
// single write lock, so they apply in call order.
type Store struct {
	mu          sync.RWMutex
	state       models.DraftState
	version     uint64
	bus         pubsub.Bus
	randomPrice func() int
}

type Option func(*Store)

// WithBus publishes a draft:<ACTION> event for every applied transition.
func WithBus(bus pubsub.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithRandomPrice replaces the auction price used when DraftNext gets none.
func WithRandomPrice(fn func() int) Option {
	return func(s *Store) { s.randomPrice = fn }
}

// New creates an empty store with the given settings.
func New(settings models.DraftSettings, opts ...Option) *Store {
	s := &Store{
		state:       models.NewDraftState(settings),
		randomPrice: func() int { return randutil.Between(10, 60) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the state and the version it was taken at.
func (s *Store) Snapshot() (models.DraftState, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), s.version
}

// Version is the number of transitions applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies one action and returns the resulting snapshot with the
// version it was committed at. A rejected action leaves the state and version
// untouched, and so does a no-op such as a repeated START_DRAFT.
func (s *Store) Dispatch(ctx context.Context, a draft.Action) (models.DraftState, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.DraftState{}, 0, err
	}

	if draft.IsNoop(s.state, a) {
		logger.Debug("Action ignored", "type", a.Type())
		return s.state.Clone(), s.version, nil
	}

	next, err := draft.Apply(s.state, a)
	if err != nil {
		logger.Debug("Action rejected", "type", a.Type(), "error", err)
		return models.DraftState{}, 0, err
	}
	s.commit(next, "draft:"+string(a.Type()), actionPayload(a, next))
	return next.Clone(), s.version, nil
}

// DraftNext drafts playerID to the team on the clock at the current round
// and pick, starting the draft first if needed. Auction drafts without a
// price get a random one. The returned version is the one the pick committed.
func (s *Store) DraftNext(ctx context.Context, playerID string, price *int) (models.DraftState, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.DraftState{}, 0, err
	}

	working := s.state
	started := false
	if !working.IsDraftStarted {
		var err error
		if working, err = draft.Apply(working, draft.StartDraft{}); err != nil {
			return models.DraftState{}, 0, err
		}
		started = true
	}

	team, ok := draft.TeamOnClock(working)
	if !ok {
		return models.DraftState{}, 0, ErrNoTeamOnClock
	}

	if price == nil && working.Settings.IsAuction {
		p := s.randomPrice()
		price = &p
	}

	action := draft.DraftPlayer{
		PlayerID: playerID,
		TeamID:   team.ID,
		Round:    working.CurrentRound,
		Pick:     working.CurrentPick,
		Price:    price,
	}
	next, err := draft.Apply(working, action)
	if err != nil {
		return models.DraftState{}, 0, err
	}

	if started {
		s.commit(working, "draft:"+string(draft.ActionStartDraft), nil)
	}
	s.commit(next, "draft:"+string(draft.ActionDraftPlayer), actionPayload(action, next))
	logger.Info("Player drafted", "playerId", playerID, "teamId", team.ID, "pick", action.Pick, "round", action.Round)
	return next.Clone(), s.version, nil
}

// Bootstrap loads players from the ranking provider and builds teams from
// the current settings. Draft progress is discarded.
func (s *Store) Bootstrap(ctx context.Context, provider RankingsProvider) (rankings.Result, error) {
	return s.load(ctx, provider, s.currentState, EventBootstrap)
}

// Reset starts over from an empty draft with the current settings.
func (s *Store) Reset(ctx context.Context, provider RankingsProvider) (rankings.Result, error) {
	return s.load(ctx, provider, func() models.DraftState {
		return models.NewDraftState(s.state.Settings)
	}, EventReset)
}

func (s *Store) currentState() models.DraftState { return s.state }

func (s *Store) load(ctx context.Context, provider RankingsProvider, base func() models.DraftState, event string) (rankings.Result, error) {
	// Fetch outside the lock; a live fetch can take seconds.
	res := provider.PlayerRankings(ctx)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := base()
	var err error
	if working, err = draft.Apply(working, draft.SetTeams{Teams: draft.NewTeams(working.Settings)}); err != nil {
		return res, fmt.Errorf("set teams: %w", err)
	}
	if working, err = draft.Apply(working, draft.SetPlayers{Players: res.Players}); err != nil {
		return res, fmt.Errorf("set players: %w", err)
	}
	working.CurrentPick, working.CurrentRound = 1, 1
	working.IsDraftStarted = false

	s.commit(working, event, map[string]any{
		"origin":  string(res.Origin),
		"source":  res.Source,
		"players": len(res.Players),
		"teams":   len(working.Teams),
	})
	logger.Info("Draft loaded", "event", event, "origin", res.Origin, "source", res.Source, "players", len(res.Players))
	return res, nil
}

// commit must be called with s.mu held.
func (s *Store) commit(next models.DraftState, eventType string, payload map[string]any) {
	s.state = next
	s.version++
	if s.bus != nil {
		s.bus.Publish(pubsub.NewEvent(eventType, s.version, payload))
	}
}

func actionPayload(a draft.Action, s models.DraftState) map[string]any {
	p := map[string]any{
		"currentPick":  s.CurrentPick,
		"currentRound": s.CurrentRound,
		"drafted":      s.DraftedCount(),
	}
	switch a := a.(type) {
	case draft.DraftPlayer:
		p["playerId"] = a.PlayerID
		p["teamId"] = a.TeamID
		p["round"] = a.Round
		p["pick"] = a.Pick
		if a.Price != nil {
			p["price"] = *a.Price
		}
	case draft.SetSearchQuery:
		p["query"] = a.Query
	case draft.SetPlayers:
		p["players"] = len(a.Players)
	case draft.SetTeams:
		p["teams"] = len(a.Teams)
	}
	return p
}
