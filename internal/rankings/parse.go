package rankings

import (
	"math"
	"strconv"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

const (
	// SeasonGames scales per-game points to a season projection.
	SeasonGames = 17
	// MaxPlayers caps how many parsed players are kept.
	MaxPlayers = 300
	// TierSize is the number of consecutive ranks that share a tier.
	TierSize = 12

	DefaultPosition = models.PositionRB
	FreeAgent       = "FA"
)

var positionCodes = map[int]models.Position{
	1:  models.PositionQB,
	2:  models.PositionRB,
	3:  models.PositionWR,
	4:  models.PositionTE,
	5:  models.PositionK,
	16: models.PositionDEF,
}

var teamCodes = map[int]string{
	1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
	9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
	17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
	25: "SF", 26: "SEA", 27: "TB", 28: "WAS", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
}

// PositionForCode maps a feed position code, defaulting to RB.
func PositionForCode(code int) models.Position {
	if p, ok := positionCodes[code]; ok {
		return p
	}
	return DefaultPosition
}

// TeamForCode maps a feed team code, defaulting to FA.
func TeamForCode(code int) string {
	if t, ok := teamCodes[code]; ok {
		return t
	}
	return FreeAgent
}

// CodeForPosition is the inverse of PositionForCode.
func CodeForPosition(p models.Position) int {
	for code, pos := range positionCodes {
		if pos == p {
			return code
		}
	}
	return 0
}

// CodeForTeam is the inverse of TeamForCode; 0 for free agents.
func CodeForTeam(team string) int {
	for code, abbr := range teamCodes {
		if abbr == team {
			return code
		}
	}
	return 0
}

// Parse converts feed records into ranked players. Records without a
// position code are skipped. randomPoints supplies a projection when the
// feed has no usable per-game stat.
func Parse(records []SourcePlayer, randomPoints func() int) []models.Player {
	players := make([]models.Player, 0, min(len(records), MaxPlayers))
	for _, r := range records {
		if r.PositionCode == 0 {
			continue
		}
		index := len(players)
		id := strconv.FormatInt(r.ID, 10)

		adp := float64(index + 1)
		if r.Rank != 0 {
			adp = r.Rank
		}

		points := 0
		if r.PointsPerGame != nil {
			points = int(math.Round(*r.PointsPerGame * SeasonGames))
		}
		if points == 0 {
			points = randomPoints()
		}

		players = append(players, models.Player{
			ID:              id,
			Name:            r.FullName,
			Position:        PositionForCode(r.PositionCode),
			Team:            TeamForCode(r.TeamCode),
			Rank:            index + 1,
			ADP:             adp,
			Tier:            index/TierSize + 1,
			Bye:             r.ByeWeek,
			ProjectedPoints: points,
			ESPNID:          id,
		})
		if len(players) == MaxPlayers {
			break
		}
	}
	return players
}
