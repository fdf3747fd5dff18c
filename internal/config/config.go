package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
)

// Rankings sources selectable with RANKINGS_SOURCE.
const (
	SourceESPN       = "espn"
	SourceSQLite     = "sqlite"
	SourcePostgres   = "postgres"
	SourceClickHouse = "clickhouse"
	SourceStatic     = "static"
)

// Event bus drivers selectable with PUBSUB_DRIVER. An empty driver picks
// embedded NATS in development and external NATS otherwise.
const (
	PubSubMemory   = "memory"
	PubSubEmbedded = "embedded"
	PubSubNATS     = "nats"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`
	GRPCAddr    string `env:"GRPC_ADDR" envDefault:"127.0.0.1:50051"`

	RankingsSource       string        `env:"RANKINGS_SOURCE" envDefault:"espn"`
	RankingsURL          string        `env:"RANKINGS_URL"`
	RankingsSeason       string        `env:"RANKINGS_SEASON" envDefault:"2024"`
	RankingsCacheTTL     time.Duration `env:"RANKINGS_CACHE_TTL" envDefault:"5m"`
	RankingsFetchTimeout time.Duration `env:"RANKINGS_FETCH_TIMEOUT" envDefault:"10s"`

	SQLiteFile  string `env:"SQLITE_FILE" envDefault:"rankings.sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`

	ClickHouse ClickHouseConfig `envPrefix:"CLICKHOUSE_"`

	PubSubDriver string `env:"PUBSUB_DRIVER"`
	NATSURL      string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSSubject  string `env:"NATS_SUBJECT" envDefault:"draft.events"`

	Authentik AuthentikConfig `envPrefix:"AUTHENTIK_"`

	LeagueSize int  `env:"LEAGUE_SIZE" envDefault:"12"`
	RosterSize int  `env:"ROSTER_SIZE" envDefault:"16"`
	Auction    bool `env:"AUCTION" envDefault:"false"`
	Budget     int  `env:"BUDGET" envDefault:"200"`
}

type ClickHouseConfig struct {
	Addr       string `env:"ADDR" envDefault:"localhost:9000"`
	Database   string `env:"DB" envDefault:"default"`
	Username   string `env:"USER" envDefault:"default"`
	Password   string `env:"PASSWORD"`
	WindowDays int    `env:"WINDOW_DAYS" envDefault:"30"`
}

type AuthentikConfig struct {
	BaseURL      string `env:"BASE_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:3000/auth/callback"`
	AdminGroup   string `env:"ADMIN_GROUP" envDefault:"commissioners"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.RankingsSource {
	case SourceESPN, SourceSQLite, SourceClickHouse, SourceStatic:
	case SourcePostgres:
		// Development falls back to a SQLite-backed mock.
		if c.DatabaseURL == "" && !c.IsDevelopment() {
			return fmt.Errorf("DATABASE_URL is required when RANKINGS_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown RANKINGS_SOURCE %q (valid: espn, sqlite, postgres, clickhouse, static)", c.RankingsSource)
	}

	switch c.PubSubDriver {
	case "", PubSubMemory, PubSubEmbedded, PubSubNATS:
	default:
		return fmt.Errorf("unknown PUBSUB_DRIVER %q (valid: memory, embedded, nats)", c.PubSubDriver)
	}

	if !c.IsDevelopment() && c.Authentik.BaseURL == "" {
		return fmt.Errorf("AUTHENTIK_BASE_URL, AUTHENTIK_CLIENT_ID and AUTHENTIK_CLIENT_SECRET are required outside development")
	}
	return nil
}

// IsDevelopment reports whether mocks and embedded infrastructure are used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// BusDriver resolves the effective PUBSUB_DRIVER.
func (c *Config) BusDriver() string {
	if c.PubSubDriver != "" {
		return c.PubSubDriver
	}
	if c.IsDevelopment() {
		return PubSubEmbedded
	}
	return PubSubNATS
}

// DraftSettings builds the initial league settings. Values are taken as
// given; the reducer does not validate settings either.
func (c *Config) DraftSettings() models.DraftSettings {
	s := models.DefaultSettings()
	s.LeagueSize = c.LeagueSize
	s.RosterSize = c.RosterSize
	s.IsAuction = c.Auction
	s.Budget = c.Budget
	return s
}
