package rankings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   int
	records []SourcePlayer
	err     error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchPlayers(ctx context.Context) ([]SourcePlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ppg(v float64) *float64 { return &v }

func liveRecords() []SourcePlayer {
	return []SourcePlayer{
		{ID: 3139477, FullName: "Patrick Mahomes", PositionCode: 1, TeamCode: 12, Rank: 24.5, ByeWeek: 6, PointsPerGame: ppg(21.3)},
		{ID: 4241457, FullName: "Bijan Robinson", PositionCode: 2, TeamCode: 1, ByeWeek: 12, PointsPerGame: ppg(18)},
		{ID: 4362628, FullName: "Ja'Marr Chase", PositionCode: 3, TeamCode: 4},
	}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPlayerRankingsLive(t *testing.T) {
	src := &fakeSource{records: liveRecords()}
	p := NewProvider(src, WithRandomPoints(func() int { return 150 }))

	res := p.PlayerRankings(context.Background())

	require.Equal(t, OriginLive, res.Origin)
	require.NoError(t, res.Err)
	assert.Equal(t, "fake", res.Source)
	assert.False(t, res.Cached)
	require.Len(t, res.Players, 3)

	mahomes := res.Players[0]
	assert.Equal(t, "3139477", mahomes.ID)
	assert.Equal(t, "3139477", mahomes.ESPNID)
	assert.Equal(t, models.PositionQB, mahomes.Position)
	assert.Equal(t, "KC", mahomes.Team)
	assert.Equal(t, 1, mahomes.Rank)
	assert.Equal(t, 24.5, mahomes.ADP)
	assert.Equal(t, 362, mahomes.ProjectedPoints) // round(21.3 * 17)
	assert.Equal(t, 6, mahomes.Bye)

	assert.Equal(t, 2.0, res.Players[1].ADP, "adp falls back to rank")
	assert.Equal(t, 306, res.Players[1].ProjectedPoints)
	assert.Equal(t, 150, res.Players[2].ProjectedPoints, "missing stat uses random projection")
	assert.Equal(t, 0, res.Players[2].Bye)
}

func TestPlayerRankingsCachesWithinWindow(t *testing.T) {
	c := &clock{now: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)}
	src := &fakeSource{records: liveRecords()}
	p := NewProvider(src, WithClock(c.Now))

	first := p.PlayerRankings(context.Background())
	c.Advance(4 * time.Minute)
	second := p.PlayerRankings(context.Background())

	assert.Equal(t, 1, src.Calls())
	assert.True(t, second.Cached)
	assert.Equal(t, first.Players, second.Players, "random projections must not change between cached calls")

	p.ClearCache()
	third := p.PlayerRankings(context.Background())
	assert.Equal(t, 2, src.Calls())
	assert.False(t, third.Cached)

	c.Advance(DefaultCacheTTL)
	p.PlayerRankings(context.Background())
	assert.Equal(t, 3, src.Calls(), "expired entry re-fetches")
}

func TestPlayerRankingsReturnsCopies(t *testing.T) {
	p := NewProvider(&fakeSource{records: liveRecords()})

	first := p.PlayerRankings(context.Background())
	first.Players[0].Name = "mutated"

	second := p.PlayerRankings(context.Background())
	assert.Equal(t, "Patrick Mahomes", second.Players[0].Name)
}

func TestPlayerRankingsPermanentFailure(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{err: boom}
	p := NewProvider(src)

	for i := 0; i < 3; i++ {
		res := p.PlayerRankings(context.Background())
		assert.Equal(t, OriginFallback, res.Origin)
		assert.ErrorIs(t, res.Err, boom)
		assert.Equal(t, FallbackPlayers(), res.Players)
		assert.Len(t, res.Players, FallbackCount)
	}
	assert.Equal(t, 3, src.Calls(), "failures are never cached")
}

func TestPlayerRankingsUnusablePayload(t *testing.T) {
	src := &fakeSource{records: []SourcePlayer{{ID: 1, FullName: "No Position"}}}
	p := NewProvider(src)

	res := p.PlayerRankings(context.Background())
	assert.Equal(t, OriginFallback, res.Origin)
	assert.ErrorIs(t, res.Err, ErrNoUsablePlayers)
}

// slowSource blocks every fetch until released or its context ends.
type slowSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowSource) Name() string { return "slow" }

func (s *slowSource) FetchPlayers(ctx context.Context) ([]SourcePlayer, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return liveRecords(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestPlayerRankingsCancelledCallerKeepsOthersLive(t *testing.T) {
	src := &slowSource{started: make(chan struct{}), release: make(chan struct{})}
	p := NewProvider(src, WithRandomPoints(func() int { return 150 }))

	ctxA, cancelA := context.WithCancel(context.Background())
	resA := make(chan Result, 1)
	go func() { resA <- p.PlayerRankings(ctxA) }()
	<-src.started

	resB := make(chan Result, 1)
	go func() { resB <- p.PlayerRankings(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	cancelA()
	a := <-resA
	assert.Equal(t, OriginFallback, a.Origin)
	assert.ErrorIs(t, a.Err, context.Canceled)

	close(src.release)
	b := <-resB
	require.NoError(t, b.Err)
	assert.Equal(t, OriginLive, b.Origin)
	assert.Len(t, b.Players, 3)

	cached := p.PlayerRankings(context.Background())
	assert.True(t, cached.Cached)
}

func TestPlayerRankingsFetchTimeout(t *testing.T) {
	src := &slowSource{started: make(chan struct{}), release: make(chan struct{})}
	p := NewProvider(src, WithFetchTimeout(20*time.Millisecond))

	res := p.PlayerRankings(context.Background())
	assert.Equal(t, OriginFallback, res.Origin)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestPlayerRankingsWithoutSource(t *testing.T) {
	p := NewProvider(nil)

	res := p.PlayerRankings(context.Background())
	assert.Equal(t, OriginFallback, res.Origin)
	assert.NoError(t, res.Err)
	assert.Equal(t, "static", p.SourceName())
	assert.NoError(t, p.Ping(context.Background()))
}

func TestFallbackPlayers(t *testing.T) {
	players := FallbackPlayers()
	require.Len(t, players, 55)

	first := players[0]
	assert.Equal(t, models.Player{
		ID: "1", Name: "Christian McCaffrey", Position: models.PositionRB, Team: "SF",
		Rank: 1, ADP: 1.2, Tier: 1, Bye: 9, ProjectedPoints: 320,
	}, first)

	positions := map[models.Position]int{}
	for i, p := range players {
		assert.False(t, p.IsDrafted)
		assert.Equal(t, i+1, p.Rank)
		positions[p.Position]++
	}
	assert.Equal(t, map[models.Position]int{
		models.PositionQB: 10, models.PositionRB: 15, models.PositionWR: 15,
		models.PositionTE: 5, models.PositionK: 5, models.PositionDEF: 5,
	}, positions)

	players[0].Name = "mutated"
	assert.Equal(t, "Christian McCaffrey", FallbackPlayers()[0].Name)
}

func TestStubs(t *testing.T) {
	p := NewProvider(nil)
	assert.Equal(t, "No recent news available.", p.PlayerNews(context.Background(), "1"))
	assert.Empty(t, p.InjuryUpdates(context.Background()))
}
