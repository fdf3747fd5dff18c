package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/auth"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/clickhouse"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/config"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/dal"
	grpcserver "github.com/Billy-Davies-2/ff-draft-assistant/internal/grpc"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/handlers"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/health"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/mocks"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings/espn"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/store"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logger.Error("Draft assistant stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(cfg.LogLevel)
	logger.Info("Starting fantasy draft assistant", "environment", cfg.Environment)

	// --- Rankings ---
	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening rankings source: %w", err)
	}
	defer closeSource()

	provider := rankings.NewProvider(source,
		rankings.WithCacheTTL(cfg.RankingsCacheTTL),
		rankings.WithFetchTimeout(cfg.RankingsFetchTimeout),
	)
	logger.Info("Rankings provider ready", "source", provider.SourceName(), "cacheTTL", cfg.RankingsCacheTTL)

	// --- Event bus ---
	bus, closeBus, err := openBus(cfg)
	if err != nil {
		return fmt.Errorf("opening event bus: %w", err)
	}
	defer closeBus()

	// --- Auth ---
	var authProvider auth.Provider
	if cfg.IsDevelopment() {
		logger.Info("Using mock authentication for local development (no Authentik server required)")
		authProvider = auth.NewMockAuth(cfg.Authentik.AdminGroup)
	} else {
		authProvider = auth.NewAuthentikAuth(auth.AuthentikConfig{
			BaseURL:      cfg.Authentik.BaseURL,
			ClientID:     cfg.Authentik.ClientID,
			ClientSecret: cfg.Authentik.ClientSecret,
			RedirectURL:  cfg.Authentik.RedirectURL,
		})
		logger.Info("Using Authentik", "url", cfg.Authentik.BaseURL)
	}

	// --- Draft store ---
	draftStore := store.New(cfg.DraftSettings(), store.WithBus(bus))
	res, err := draftStore.Bootstrap(ctx, provider)
	if err != nil {
		return fmt.Errorf("bootstrapping draft: %w", err)
	}
	if res.Err != nil {
		logger.Warn("Draft bootstrapped from fallback rankings", "reason", res.Err)
	}

	// --- HTTP server ---
	checks := map[string]health.Checker{
		"rankings": health.CheckFunc(provider.Ping),
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		API:               handlers.NewAPIHandlers(draftStore, provider, bus),
		Auth:              authProvider,
		CommissionerGroup: cfg.Authentik.AdminGroup,
		Health:            health.NewHandler(logger.Logger, checks).Routes(),
		WS:                ws.Handler(draftStore, bus, nil),
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- gRPC server ---
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listening for gRPC on %s: %w", cfg.GRPCAddr, err)
	}
	grpcServer := grpc.NewServer()
	grpcserver.NewServer(draftStore, provider, bus).Register(grpcServer)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server starting", "address", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serving gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		// Event streams never finish on their own.
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openSource picks the ranking feed named by RANKINGS_SOURCE. Development
// swaps Postgres and ClickHouse for local mocks, the same way the event bus
// runs embedded.
func openSource(ctx context.Context, cfg *config.Config) (rankings.Source, func(), error) {
	noop := func() {}

	switch cfg.RankingsSource {
	case config.SourceStatic:
		logger.Info("Using static rankings only")
		return nil, noop, nil

	case config.SourceSQLite:
		d, err := dal.NewSQLiteDAL(cfg.SQLiteFile)
		if err != nil {
			return nil, noop, fmt.Errorf("initializing SQLite: %w", err)
		}
		logger.Info("Connected to SQLite rankings", "file", cfg.SQLiteFile)
		return d, func() { d.Close() }, nil

	case config.SourcePostgres:
		if cfg.IsDevelopment() && cfg.DatabaseURL == "" {
			d, err := mocks.NewMockPostgresDAL(ctx, cfg.SQLiteFile)
			if err != nil {
				return nil, noop, err
			}
			return d, func() { d.Close() }, nil
		}
		d, err := dal.NewPostgresDAL(ctx, cfg.DatabaseURL, dal.PostgresOptions{
			MaxRetries: 5,
			RetryDelay: 2 * time.Second,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("initializing Postgres: %w", err)
		}
		logger.Info("Connected to Postgres rankings")
		return d, func() { d.Close() }, nil

	case config.SourceClickHouse:
		if cfg.IsDevelopment() {
			return mocks.NewMockADPSource(), noop, nil
		}
		c, err := clickhouse.NewClient(ctx, clickhouse.Config{
			Addr:       cfg.ClickHouse.Addr,
			Database:   cfg.ClickHouse.Database,
			Username:   cfg.ClickHouse.Username,
			Password:   cfg.ClickHouse.Password,
			WindowDays: cfg.ClickHouse.WindowDays,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("initializing ClickHouse: %w", err)
		}
		logger.Info("Connected to ClickHouse", "address", cfg.ClickHouse.Addr, "database", cfg.ClickHouse.Database)
		return c, func() { c.Close() }, nil

	default:
		c := espn.NewClient(espn.Config{
			BaseURL: cfg.RankingsURL,
			Season:  cfg.RankingsSeason,
			Timeout: cfg.RankingsFetchTimeout,
		})
		logger.Info("Using ESPN rankings", "url", c.URL())
		return c, noop, nil
	}
}

// openBus returns the bus the store publishes to. Broker-backed drivers are
// wrapped so local subscribers receive every instance's events.
func openBus(cfg *config.Config) (pubsub.Bus, func(), error) {
	switch cfg.BusDriver() {
	case config.PubSubMemory:
		logger.Info("Using in-memory event bus")
		bus := pubsub.NewMemoryBus(pubsub.DefaultReplaySize)
		return bus, bus.Close, nil

	case config.PubSubEmbedded:
		logger.Info("Starting embedded NATS server for local development")
		opts := pubsub.DefaultEmbeddedNATSOptions()
		opts.Subject = cfg.NATSSubject
		embedded, err := pubsub.NewEmbeddedNATSPubSub(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing embedded NATS: %w", err)
		}
		logger.Info("Embedded NATS server ready", "url", embedded.ServerURL())
		return pubsub.NewWithUpstream(embedded), embedded.Close, nil

	default:
		js, err := pubsub.NewNATSPubSub(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing NATS: %w", err)
		}
		logger.Info("Connected to NATS", "url", cfg.NATSURL, "subject", cfg.NATSSubject)
		return pubsub.NewWithUpstream(js), js.Close, nil
	}
}
