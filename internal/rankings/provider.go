package rankings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/cache"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/randutil"
)

// DefaultCacheTTL is how long a live ranking board is reused.
const DefaultCacheTTL = 5 * time.Minute

// DefaultFetchTimeout bounds one shared fetch from the source.
const DefaultFetchTimeout = 30 * time.Second

const noNews = "No recent news available."

// ErrNoUsablePlayers is recorded when a source answered but nothing parsed.
var ErrNoUsablePlayers = errors.New("source returned no usable players")

// Origin tells callers which path produced a ranking board.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Result is the outcome of PlayerRankings. It is always usable: Err only
// explains why the fallback board was served.
type Result struct {
	Players   []models.Player `json:"players"`
	Origin    Origin          `json:"origin"`
	Source    string          `json:"source"`
	Cached    bool            `json:"cached"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Err       error           `json:"-"`
}

type board struct {
	players   []models.Player
	fetchedAt time.Time
}

// Provider serves ranked players from a live source with a short-lived
// cache, falling back to the static board on any failure.
type Provider struct {
	source       Source
	cache        *cache.TTL[board]
	fetchTimeout time.Duration
	now          func() time.Time
	randomPoints func() int
}

type Option func(*providerOptions)

type providerOptions struct {
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	randomPoints func() int
}

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *providerOptions) { o.ttl = ttl }
}

// WithFetchTimeout overrides DefaultFetchTimeout. The fetch is shared by
// every caller that missed the cache, so no caller's deadline applies to it.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *providerOptions) { o.fetchTimeout = d }
}

// WithClock replaces time.Now for cache expiry and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *providerOptions) { o.now = now }
}

// WithRandomPoints replaces the projection used when a feed has no stats.
func WithRandomPoints(fn func() int) Option {
	return func(o *providerOptions) { o.randomPoints = fn }
}

// NewProvider creates a provider. A nil source always serves the fallback.
func NewProvider(source Source, opts ...Option) *Provider {
	o := providerOptions{
		ttl:          DefaultCacheTTL,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		randomPoints: func() int {
			return randutil.Between(100, 300)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Provider{
		source:       source,
		cache:        cache.New[board](o.ttl, cache.WithClock(o.now)),
		fetchTimeout: o.fetchTimeout,
		now:          o.now,
		randomPoints: o.randomPoints,
	}
}

// SourceName returns the configured source name, or "static".
func (p *Provider) SourceName() string {
	if p.source == nil {
		return "static"
	}
	return p.source.Name()
}

// PlayerRankings returns the live board when the source is usable and the
// static fallback otherwise. It never fails.
func (p *Provider) PlayerRankings(ctx context.Context) Result {
	if p.source == nil {
		return p.fallback(nil)
	}

	key := p.source.Name()
	b, hit, err := p.cache.GetOrCompute(ctx, key, p.fetch)
	if err != nil {
		logger.Warn("Ranking fetch failed, serving fallback players", "source", key, "error", err)
		return p.fallback(err)
	}

	if !hit {
		logger.Info("Fetched live rankings", "source", key, "players", len(b.players))
	}
	return Result{
		Players:   models.ClonePlayers(b.players),
		Origin:    OriginLive,
		Source:    key,
		Cached:    hit,
		FetchedAt: b.fetchedAt,
	}
}

func (p *Provider) fetch(ctx context.Context) (board, error) {
	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}

	records, err := p.source.FetchPlayers(ctx)
	if err != nil {
		return board{}, fmt.Errorf("fetch %s rankings: %w", p.source.Name(), err)
	}
	players := Parse(records, p.randomPoints)
	if len(players) == 0 {
		return board{}, fmt.Errorf("fetch %s rankings: %w", p.source.Name(), ErrNoUsablePlayers)
	}
	return board{players: players, fetchedAt: p.now()}, nil
}

func (p *Provider) fallback(err error) Result {
	return Result{
		Players:   FallbackPlayers(),
		Origin:    OriginFallback,
		Source:    "static",
		FetchedAt: p.now(),
		Err:       err,
	}
}

// ClearCache drops every cached board so the next call re-fetches.
func (p *Provider) ClearCache() {
	p.cache.Clear()
	logger.Info("Ranking cache cleared")
}

// Ping checks the source when it supports it.
func (p *Provider) Ping(ctx context.Context) error {
	if pinger, ok := p.source.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// PlayerNews has no news feed behind it yet and returns a placeholder.
func (p *Provider) PlayerNews(ctx context.Context, playerID string) string {
	return noNews
}

// InjuryUpdates has no injury feed behind it yet and returns an empty map.
func (p *Provider) InjuryUpdates(ctx context.Context) map[string]string {
	return map[string]string{}
}
