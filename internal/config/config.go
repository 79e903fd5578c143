// Package config loads server configuration from a YAML file, with secrets taken from the
// environment or a .env file next to it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Roster sources
const (
	SourceSportradar = "sportradar"
	SourceStatic     = "static"
)

type AppConfig struct {
	Name            string        `yaml:"name"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db"`
	Password string `yaml:"-"` // Loaded from environment
}

type PostgresConfig struct {
	DSN string `yaml:"-"` // Loaded from environment
}

type SportradarConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	SeasonType     string        `yaml:"season_type"`
	ScheduleWindow time.Duration `yaml:"schedule_window"`
	APIKey         string        `yaml:"-"` // Loaded from environment
}

type RosterConfig struct {
	Source string `yaml:"source"`
	// GameID pins the game to draft. Empty follows the team's schedule.
	GameID          string           `yaml:"game_id"`
	Team            string           `yaml:"team"`
	RefreshInterval time.Duration    `yaml:"refresh_interval"`
	RosterTTL       time.Duration    `yaml:"roster_ttl"`
	GameTTL         time.Duration    `yaml:"game_ttl"`
	Sportradar      SportradarConfig `yaml:"sportradar"`
}

// NATSConfig enables JetStream event publishing when URL is set
type NATSConfig struct {
	URL           string `yaml:"url"`
	StreamName    string `yaml:"stream_name"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// DiscordConfig enables the bot when Token is set
type DiscordConfig struct {
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
	Token         string `yaml:"-"` // Loaded from environment
}

type Config struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Roster   RosterConfig   `yaml:"roster"`
	NATS     NATSConfig     `yaml:"nats"`
	Discord  DiscordConfig  `yaml:"discord"`
}

// Default returns the configuration used for anything a file leaves out
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:            "lightthelamp",
			Environment:     "development",
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Backend: StoreRedis,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Roster: RosterConfig{
			Source:          SourceStatic,
			Team:            "detroit",
			RefreshInterval: 5 * time.Minute,
			RosterTTL:       5 * time.Minute,
			GameTTL:         15 * time.Minute,
			Sportradar: SportradarConfig{
				Timeout:        10 * time.Second,
				SeasonType:     "REG",
				ScheduleWindow: 30 * 24 * time.Hour,
			},
		},
		NATS: NATSConfig{
			StreamName:    "DRAFT_EVENTS",
			SubjectPrefix: "draft.events",
		},
	}
}

// Load reads .env (if present) and the YAML file at configPath, then applies the environment.
// An empty configPath uses defaults and the environment only.
func Load(configPath string) (*Config, error) {
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv loads secrets and a few deployment overrides from the environment
func (c *Config) applyEnv() {
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	c.Postgres.DSN = os.Getenv("DATABASE_URL")
	c.Roster.Sportradar.APIKey = os.Getenv("SPORTRADAR_API_KEY")
	c.Discord.Token = os.Getenv("DISCORD_TOKEN")

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("ROSTER_GAME_ID"); v != "" {
		c.Roster.GameID = v
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port %d is out of range", c.App.Port)
	}
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", c.Log.Level)
	}

	switch c.Store.Backend {
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the redis store")
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		// Rosters are always cached in Redis
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the roster cache")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported store backend: %s", c.Store.Backend)
	}

	switch c.Roster.Source {
	case SourceSportradar:
		if c.Roster.GameID == "" && c.Roster.Team == "" {
			return fmt.Errorf("roster team is required to follow the schedule")
		}
		switch c.Roster.Sportradar.SeasonType {
		case "", "PRE", "REG", "PST":
		default:
			return fmt.Errorf("unsupported sportradar season type: %s", c.Roster.Sportradar.SeasonType)
		}
		if c.Roster.Sportradar.APIKey == "" {
			return fmt.Errorf("SPORTRADAR_API_KEY is required for the sportradar source")
		}
	case SourceStatic:
	default:
		return fmt.Errorf("unsupported roster source: %s", c.Roster.Source)
	}
	if c.Roster.RefreshInterval <= 0 {
		return fmt.Errorf("roster refresh interval must be positive")
	}

	if c.NATS.URL != "" && c.NATS.StreamName == "" {
		return fmt.Errorf("nats stream name is required when nats is enabled")
	}

	return nil
}

// Addr is the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// IsDevelopment reports whether the app runs in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
