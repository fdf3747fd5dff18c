package draft_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
)

func seededState(t *testing.T, settings models.DraftSettings) models.DraftState {
	t.Helper()
	s := models.NewDraftState(settings)

	var err error
	s, err = draft.Apply(s, draft.SetPlayers{Players: rankings.FallbackPlayers()})
	require.NoError(t, err)
	s, err = draft.Apply(s, draft.SetTeams{Teams: draft.NewTeams(settings)})
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s models.DraftState, a draft.Action) models.DraftState {
	t.Helper()
	next, err := draft.Apply(s, a)
	require.NoError(t, err)
	return next
}

func TestDraftMcCaffreyEndToEnd(t *testing.T) {
	s := seededState(t, models.DefaultSettings())

	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1})

	p := s.Players[s.PlayerIndex("1")]
	assert.Equal(t, "Christian McCaffrey", p.Name)
	assert.True(t, p.IsDrafted)
	assert.Equal(t, "team-1", p.DraftedBy)
	assert.Equal(t, 1, p.DraftRound)
	assert.Equal(t, 1, p.DraftPick)
	assert.Nil(t, p.AuctionPrice)

	team := s.Teams[s.TeamIndex("team-1")]
	require.Len(t, team.Players, 1)
	assert.Equal(t, "1", team.Players[0].ID)

	assert.Equal(t, 2, s.CurrentPick)
	assert.Equal(t, 1, s.CurrentRound)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	before := s.Clone()

	_ = mustApply(t, s, draft.DraftPlayer{PlayerID: "2", TeamID: "team-3", Round: 1, Pick: 1})

	assert.Equal(t, before, s)
}

func TestDraftPlayerRejectsPreconditionViolations(t *testing.T) {
	tests := []struct {
		name    string
		action  draft.DraftPlayer
		wantErr error
	}{
		{"unknown player", draft.DraftPlayer{PlayerID: "999", TeamID: "team-1", Round: 1, Pick: 2}, draft.ErrPlayerNotFound},
		{"unknown team", draft.DraftPlayer{PlayerID: "2", TeamID: "team-99", Round: 1, Pick: 2}, draft.ErrTeamNotFound},
		{"already drafted", draft.DraftPlayer{PlayerID: "1", TeamID: "team-2", Round: 1, Pick: 2}, draft.ErrPlayerAlreadyDrafted},
	}

	base := seededState(t, models.DefaultSettings())
	base = mustApply(t, base, draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := draft.Apply(base, tt.action)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			assert.Equal(t, base, next, "state must be unchanged on error")
		})
	}
}

func TestDraftedCountMatchesSuccessfulActions(t *testing.T) {
	s := seededState(t, models.DefaultSettings())

	successes := 0
	// Draft every player twice in order; the second attempt must be rejected.
	for round := 0; round < 2; round++ {
		for i, p := range s.Players {
			team := s.Teams[i%len(s.Teams)]
			next, err := draft.Apply(s, draft.DraftPlayer{PlayerID: p.ID, TeamID: team.ID, Round: s.CurrentRound, Pick: s.CurrentPick})
			if err != nil {
				require.ErrorIs(t, err, draft.ErrPlayerAlreadyDrafted)
				continue
			}
			successes++
			s = next
		}
	}

	assert.Equal(t, len(s.Players), successes)
	assert.Equal(t, successes, s.DraftedCount())

	rostered := 0
	seen := map[string]bool{}
	for _, team := range s.Teams {
		for _, p := range team.Players {
			assert.False(t, seen[p.ID], "player %s rostered twice", p.ID)
			seen[p.ID] = true
			rostered++
		}
	}
	assert.Equal(t, successes, rostered)
}

func TestCurrentRoundAfterNPicks(t *testing.T) {
	for _, leagueSize := range []int{1, 2, 3, 8, 10, 12, 14} {
		settings := models.DefaultSettings()
		settings.LeagueSize = leagueSize
		s := seededState(t, settings)

		for n := 0; n < len(s.Players); n++ {
			if want := n/leagueSize + 1; s.CurrentRound != want {
				t.Fatalf("L=%d n=%d: round %d, want %d", leagueSize, n, s.CurrentRound, want)
			}
			p := s.Players[n]
			team := s.Teams[draft.TeamIndexForPick(s.CurrentPick, leagueSize)]
			s = mustApply(t, s, draft.DraftPlayer{PlayerID: p.ID, TeamID: team.ID, Round: s.CurrentRound, Pick: s.CurrentPick})
		}
	}
}

func TestRoundForPick(t *testing.T) {
	tests := []struct {
		pick, leagueSize, want int
	}{
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{24, 12, 2},
		{25, 12, 3},
		{0, 12, 1},
		{5, 0, 5},
		{5, 1, 5},
	}
	for _, tt := range tests {
		if got := draft.RoundForPick(tt.pick, tt.leagueSize); got != tt.want {
			t.Errorf("RoundForPick(%d, %d) = %d, want %d", tt.pick, tt.leagueSize, got, tt.want)
		}
	}
}

func TestAuctionPriceDecrementsBudget(t *testing.T) {
	settings := models.DefaultSettings()
	settings.IsAuction = true
	s := seededState(t, settings)

	price := 75
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1, Price: &price})
	over := 150
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "2", TeamID: "team-1", Round: 1, Pick: 2, Price: &over})

	team := s.Teams[s.TeamIndex("team-1")]
	assert.Equal(t, 200, team.Budget)
	assert.Equal(t, -25, team.RemainingBudget, "budget may go negative")
	require.NotNil(t, s.Players[0].AuctionPrice)
	assert.Equal(t, 75, *s.Players[0].AuctionPrice)

	price = 1
	assert.Equal(t, 75, *s.Players[0].AuctionPrice, "price must not alias the caller's pointer")
}

func TestUndoLastPickReversesDraft(t *testing.T) {
	settings := models.DefaultSettings()
	settings.IsAuction = true
	start := seededState(t, settings)
	start = mustApply(t, start, draft.SetSearchQuery{Query: "mia"})

	price := 40
	s := mustApply(t, start, draft.DraftPlayer{PlayerID: "2", TeamID: "team-4", Round: 1, Pick: 1, Price: &price})
	require.Equal(t, 160, s.Teams[s.TeamIndex("team-4")].RemainingBudget)

	s = mustApply(t, s, draft.UndoLastPick{})

	assert.Equal(t, start, s)
}

func TestUndoRestoresOverriddenCounters(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.SetCurrentPick{Pick: 30})
	s = mustApply(t, s, draft.SetCurrentRound{Round: 7})
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "5", TeamID: "team-6", Round: 7, Pick: 30})
	require.Equal(t, 31, s.CurrentPick)
	require.Equal(t, 3, s.CurrentRound)

	s = mustApply(t, s, draft.UndoLastPick{})
	assert.Equal(t, 30, s.CurrentPick)
	assert.Equal(t, 7, s.CurrentRound)
	assert.False(t, s.Players[s.PlayerIndex("5")].IsDrafted)
	assert.Empty(t, s.Teams[s.TeamIndex("team-6")].Players)
}

func TestUndoWithEmptyHistory(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	next, err := draft.Apply(s, draft.UndoLastPick{})
	require.ErrorIs(t, err, draft.ErrNothingToUndo)
	assert.Equal(t, s, next)
}

func TestUndoIsLastInFirstOut(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1})
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "2", TeamID: "team-2", Round: 1, Pick: 2})

	s = mustApply(t, s, draft.UndoLastPick{})
	assert.True(t, s.Players[s.PlayerIndex("1")].IsDrafted)
	assert.False(t, s.Players[s.PlayerIndex("2")].IsDrafted)
	assert.Equal(t, 2, s.CurrentPick)

	s = mustApply(t, s, draft.UndoLastPick{})
	assert.Zero(t, s.DraftedCount())
	assert.Equal(t, 1, s.CurrentPick)
}

func TestSetPlayersEmptyIsNoOp(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	next := mustApply(t, s, draft.SetPlayers{})
	assert.Equal(t, s, next)
}

func TestSetPlayersResetsFilteredViewWithoutQuery(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.SetSearchQuery{Query: "QB"})
	require.Len(t, s.FilteredPlayers, 10)

	players := rankings.FallbackPlayers()[:5]
	s = mustApply(t, s, draft.SetPlayers{Players: players})

	assert.Equal(t, "QB", s.SearchQuery)
	assert.Len(t, s.FilteredPlayers, 5, "query is not reapplied")
}

func TestStartDraftIsIdempotent(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.StartDraft{})
	require.True(t, s.IsDraftStarted)

	again := mustApply(t, s, draft.StartDraft{})
	assert.Equal(t, s, again)
}

func TestIsNoop(t *testing.T) {
	fresh := seededState(t, models.DefaultSettings())
	started := mustApply(t, fresh, draft.StartDraft{})

	tests := []struct {
		name   string
		state  models.DraftState
		action draft.Action
		want   bool
	}{
		{"empty players", fresh, draft.SetPlayers{}, true},
		{"new players", fresh, draft.SetPlayers{Players: rankings.FallbackPlayers()[:3]}, false},
		{"first start", fresh, draft.StartDraft{}, false},
		{"repeated start", started, draft.StartDraft{}, true},
		{"empty teams", fresh, draft.SetTeams{}, false},
		{"search", fresh, draft.SetSearchQuery{Query: "mia"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, draft.IsNoop(tt.state, tt.action))
		})
	}
}

func TestSetSettingsReplacesWholesale(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "1", TeamID: "team-1", Round: 1, Pick: 1})

	settings := models.DraftSettings{LeagueSize: 10, RosterSize: 15, IsAuction: true, Budget: 100, Positions: map[string]int{"QB": 2}}
	s = mustApply(t, s, draft.SetSettings{Settings: settings})

	assert.Equal(t, settings, s.Settings)
	assert.Len(t, s.Teams, 12, "existing teams are not re-validated")
	assert.True(t, s.Players[0].IsDrafted)

	settings.Positions["QB"] = 9
	assert.Equal(t, 2, s.Settings.Positions["QB"])
}

func TestSearchQueryFilterSoundAndComplete(t *testing.T) {
	base := seededState(t, models.DefaultSettings())
	base = mustApply(t, base, draft.DraftPlayer{PlayerID: "2", TeamID: "team-1", Round: 1, Pick: 1})
	base = mustApply(t, base, draft.DraftPlayer{PlayerID: "18", TeamID: "team-2", Round: 1, Pick: 2})

	for _, q := range []string{"", "mia", "MIA", "wr", "Allen", "k", "zzz", "49ers", "."} {
		s := mustApply(t, base, draft.SetSearchQuery{Query: q})
		lq := strings.ToLower(q)

		matches := func(p models.Player) bool {
			return strings.Contains(strings.ToLower(p.Name), lq) ||
				strings.Contains(strings.ToLower(string(p.Position)), lq) ||
				strings.Contains(strings.ToLower(p.Team), lq)
		}

		inView := map[string]bool{}
		for _, p := range s.FilteredPlayers {
			inView[p.ID] = true
			assert.False(t, p.IsDrafted, "q=%q: drafted player %s in view", q, p.ID)
			assert.True(t, matches(p), "q=%q: %s does not match", q, p.Name)
		}
		for _, p := range s.Players {
			if !p.IsDrafted && matches(p) {
				assert.True(t, inView[p.ID], "q=%q: %s missing from view", q, p.Name)
			}
		}
	}
}

func TestDraftRefreshesFilteredView(t *testing.T) {
	s := seededState(t, models.DefaultSettings())
	s = mustApply(t, s, draft.SetSearchQuery{Query: "MIA"})
	require.Len(t, s.FilteredPlayers, 2)

	s = mustApply(t, s, draft.DraftPlayer{PlayerID: "2", TeamID: "team-1", Round: 1, Pick: 1})
	require.Len(t, s.FilteredPlayers, 1)
	assert.Equal(t, "18", s.FilteredPlayers[0].ID)
}

func TestUnknownAction(t *testing.T) {
	type bogus struct{ draft.StartDraft }
	s := models.NewDraftState(models.DefaultSettings())
	_, err := draft.Apply(s, bogus{})
	assert.ErrorIs(t, err, draft.ErrUnknownAction)
}
