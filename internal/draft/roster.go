package draft

import (
	"math"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

// RosterSummary is the derived view of one team's roster.
type RosterSummary struct {
	PositionCounts  map[models.Position]int `json:"positionCounts"`
	TotalPlayers    int                     `json:"totalPlayers"`
	ProjectedPoints int                     `json:"projectedPoints"`
	AveragePoints   int                     `json:"averagePoints"`
	TotalSpent      int                     `json:"totalSpent"`
	RemainingBudget int                     `json:"remainingBudget"`
}

// Summarize computes position counts, point totals and spend for a team.
func Summarize(t models.Team) RosterSummary {
	sum := RosterSummary{
		PositionCounts:  make(map[models.Position]int),
		TotalPlayers:    len(t.Players),
		RemainingBudget: t.RemainingBudget,
	}
	for _, p := range t.Players {
		sum.PositionCounts[p.Position]++
		sum.ProjectedPoints += p.ProjectedPoints
		if p.AuctionPrice != nil {
			sum.TotalSpent += *p.AuctionPrice
		}
	}
	if sum.TotalPlayers > 0 {
		sum.AveragePoints = int(math.Round(float64(sum.ProjectedPoints) / float64(sum.TotalPlayers)))
	}
	return sum
}
