package rankings

import "context"

// SourcePlayer is one record of an external ranking feed. Optional fields
// use zero (or nil) for "absent".
type SourcePlayer struct {
	ID            int64
	FullName      string
	PositionCode  int
	TeamCode      int
	Rank          float64
	ByeWeek       int
	PointsPerGame *float64
}

// Source fetches a ranked player list, best first.
type Source interface {
	Name() string
	FetchPlayers(ctx context.Context) ([]SourcePlayer, error)
}

// Pinger is implemented by sources that can report their own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
