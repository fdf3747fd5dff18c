package draft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerAlreadyDrafted = errors.New("player already drafted")
	ErrTeamNotFound         = errors.New("team not found")
	ErrNothingToUndo        = errors.New("no pick to undo")
)

// IsNoop reports whether Apply would hand s back untouched without an error:
// an empty player list, or starting a draft that already started.
func IsNoop(s models.DraftState, a Action) bool {
	switch a := a.(type) {
	case SetPlayers:
		return len(a.Players) == 0
	case StartDraft:
		return s.IsDraftStarted
	}
	return false
}

// Apply returns the state that results from applying a to s. It never
// mutates s; on error s is returned unchanged.
func Apply(s models.DraftState, a Action) (models.DraftState, error) {
	switch a := a.(type) {
	case SetPlayers:
		if IsNoop(s, a) {
			return s, nil
		}
		next := s.Clone()
		next.Players = models.ClonePlayers(a.Players)
		next.FilteredPlayers = models.ClonePlayers(a.Players)
		next.History = []models.PickRecord{}
		return next, nil

	case SetTeams:
		next := s.Clone()
		next.Teams = make([]models.Team, len(a.Teams))
		for i, t := range a.Teams {
			next.Teams[i] = t.Clone()
			if next.Teams[i].Players == nil {
				next.Teams[i].Players = []models.Player{}
			}
		}
		next.History = []models.PickRecord{}
		return next, nil

	case StartDraft:
		if IsNoop(s, a) {
			return s, nil
		}
		next := s.Clone()
		next.IsDraftStarted = true
		return next, nil

	case DraftPlayer:
		return draftPlayer(s, a)

	case SetCurrentPick:
		next := s.Clone()
		next.CurrentPick = a.Pick
		return next, nil

	case SetCurrentRound:
		next := s.Clone()
		next.CurrentRound = a.Round
		return next, nil

	case SetSettings:
		next := s.Clone()
		next.Settings = a.Settings.Clone()
		return next, nil

	case SetSearchQuery:
		next := s.Clone()
		next.SearchQuery = a.Query
		next.FilteredPlayers = FilterPlayers(next.Players, a.Query)
		return next, nil

	case UndoLastPick:
		return undoLastPick(s)

	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
}

func draftPlayer(s models.DraftState, a DraftPlayer) (models.DraftState, error) {
	pi := s.PlayerIndex(a.PlayerID)
	if pi < 0 {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, a.PlayerID)
	}
	if s.Players[pi].IsDrafted {
		return s, fmt.Errorf("%w: %s by %s", ErrPlayerAlreadyDrafted, a.PlayerID, s.Players[pi].DraftedBy)
	}
	ti := s.TeamIndex(a.TeamID)
	if ti < 0 {
		return s, fmt.Errorf("%w: %s", ErrTeamNotFound, a.TeamID)
	}

	next := s.Clone()

	player := &next.Players[pi]
	player.IsDrafted = true
	player.DraftedBy = a.TeamID
	player.DraftRound = a.Round
	player.DraftPick = a.Pick
	player.AuctionPrice = copyPrice(a.Price)

	team := &next.Teams[ti]
	team.Players = append(team.Players, player.Clone())
	if a.Price != nil {
		team.RemainingBudget -= *a.Price
	}

	next.History = append(next.History, models.PickRecord{
		PlayerID:  a.PlayerID,
		TeamID:    a.TeamID,
		Round:     a.Round,
		Pick:      a.Pick,
		Price:     copyPrice(a.Price),
		PrevPick:  s.CurrentPick,
		PrevRound: s.CurrentRound,
	})

	next.CurrentPick = s.CurrentPick + 1
	next.CurrentRound = RoundForPick(next.CurrentPick, next.Settings.LeagueSize)
	next.FilteredPlayers = FilterPlayers(next.Players, next.SearchQuery)

	return next, nil
}

func undoLastPick(s models.DraftState) (models.DraftState, error) {
	if len(s.History) == 0 {
		return s, ErrNothingToUndo
	}

	next := s.Clone()
	last := next.History[len(next.History)-1]
	next.History = next.History[:len(next.History)-1]

	if pi := next.PlayerIndex(last.PlayerID); pi >= 0 {
		next.Players[pi].ClearDraft()
	}

	if ti := next.TeamIndex(last.TeamID); ti >= 0 {
		team := &next.Teams[ti]
		for i := len(team.Players) - 1; i >= 0; i-- {
			if team.Players[i].ID == last.PlayerID {
				team.Players = append(team.Players[:i], team.Players[i+1:]...)
				break
			}
		}
		if last.Price != nil {
			team.RemainingBudget += *last.Price
		}
	}

	next.CurrentPick = last.PrevPick
	next.CurrentRound = last.PrevRound
	next.FilteredPlayers = FilterPlayers(next.Players, next.SearchQuery)

	return next, nil
}

// RoundForPick returns the round the given 1-based overall pick falls in.
// It equals floor(picksMade / leagueSize) + 1 with picksMade = pick - 1.
func RoundForPick(pick, leagueSize int) int {
	if leagueSize < 1 {
		leagueSize = 1
	}
	made := pick - 1
	if made < 0 {
		made = 0
	}
	return made/leagueSize + 1
}

// FilterPlayers returns the undrafted players whose name, position or team
// contains query, ignoring case. An empty query matches every undrafted player.
func FilterPlayers(players []models.Player, query string) []models.Player {
	q := strings.ToLower(query)
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.IsDrafted {
			continue
		}
		if matchesQuery(p, q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func matchesQuery(p models.Player, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(string(p.Position)), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Team), lowerQuery)
}

func copyPrice(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
