package draft

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

// SortField selects the ordering metric for Search.
type SortField string

const (
	SortByRank            SortField = "rank"
	SortByADP             SortField = "adp"
	SortByProjectedPoints SortField = "projectedPoints"
)

// ParseSortField maps a query-string value to a sort field, defaulting to rank.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByADP, SortByProjectedPoints:
		return SortField(s)
	default:
		return SortByRank
	}
}

// Query describes a player-board lookup.
type Query struct {
	Text       string
	Position   models.Position // empty means all positions
	SortBy     SortField
	Descending bool
	Limit      int // 0 means no limit
}

// Search returns the undrafted players matching q, ordered by q.SortBy.
// Ties keep their original order.
func Search(players []models.Player, q Query) []models.Player {
	out := FilterPlayers(players, q.Text)
	if q.Position != "" {
		out = slices.DeleteFunc(out, func(p models.Player) bool {
			return !strings.EqualFold(string(p.Position), string(q.Position))
		})
	}

	key := sortKey(q.SortBy)
	slices.SortStableFunc(out, func(a, b models.Player) int {
		if q.Descending {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func sortKey(f SortField) func(models.Player) float64 {
	switch f {
	case SortByADP:
		return func(p models.Player) float64 { return p.ADP }
	case SortByProjectedPoints:
		return func(p models.Player) float64 { return float64(p.ProjectedPoints) }
	default:
		return func(p models.Player) float64 { return float64(p.Rank) }
	}
}
