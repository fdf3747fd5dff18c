package draft

import (
	"fmt"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

// TeamIndexForPick returns the 0-based slot that owns the given overall pick
// in a snake draft: even rounds go forward, odd rounds go backward.
func TeamIndexForPick(pick, leagueSize int) int {
	if leagueSize < 1 || pick < 1 {
		return 0
	}
	made := pick - 1
	round := made / leagueSize
	pickInRound := made % leagueSize
	if round%2 == 0 {
		return pickInRound
	}
	return leagueSize - 1 - pickInRound
}

// SnakePicks returns the overall pick numbers owned by the team in slot
// teamIndex across rosterSize rounds.
func SnakePicks(teamIndex, leagueSize, rosterSize int) []int {
	if leagueSize < 1 || rosterSize < 1 || teamIndex < 0 || teamIndex >= leagueSize {
		return []int{}
	}
	picks := make([]int, 0, rosterSize)
	for round := 0; round < rosterSize; round++ {
		offset := teamIndex
		if round%2 == 1 {
			offset = leagueSize - 1 - teamIndex
		}
		picks = append(picks, round*leagueSize+offset+1)
	}
	return picks
}

// NewTeams builds leagueSize empty teams with snake pick ownership and the
// league budget.
func NewTeams(settings models.DraftSettings) []models.Team {
	teams := make([]models.Team, 0, max(settings.LeagueSize, 0))
	for i := 0; i < settings.LeagueSize; i++ {
		teams = append(teams, models.Team{
			ID:              fmt.Sprintf("team-%d", i+1),
			Name:            fmt.Sprintf("Team %d", i+1),
			Owner:           fmt.Sprintf("Owner %d", i+1),
			Players:         []models.Player{},
			Budget:          settings.Budget,
			RemainingBudget: settings.Budget,
			Picks:           SnakePicks(i, settings.LeagueSize, settings.RosterSize),
		})
	}
	return teams
}

// TeamOnClock returns the team that owns the current pick. Teams without
// pick ownership fall back to snake order by their position in the list.
func TeamOnClock(s models.DraftState) (models.Team, bool) {
	for _, t := range s.Teams {
		if t.OwnsPick(s.CurrentPick) {
			return t.Clone(), true
		}
	}

	for _, t := range s.Teams {
		if len(t.Picks) > 0 {
			// Pick ownership is set up but nobody owns this pick: the draft
			// is past its last round or the counter was overridden.
			return models.Team{}, false
		}
	}

	if len(s.Teams) == 0 {
		return models.Team{}, false
	}
	idx := TeamIndexForPick(s.CurrentPick, len(s.Teams))
	return s.Teams[idx].Clone(), true
}
