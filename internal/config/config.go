// Package config defines the auto-notion service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	infraconfig "github.com/opendev-labs/auto-notion/internal/infrastructure/config"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
)

// Default values.
const (
	DefaultConfigPath    = "config.yml"
	DefaultServiceName   = "auto-notion"
	DefaultPort          = 8090
	DefaultPostgresHost  = "localhost"
	DefaultPostgresPort  = "5432"
	DefaultPostgresUser  = "postgres"
	DefaultPostgresDB    = "auto_notion"
	DefaultSSLMode       = "disable"
	DefaultRedisAddress  = "localhost:6379"
	DefaultRedisChannel  = "content:events"
	DefaultPage          = "MythicWisdom"
	DefaultMaxDays       = 365
	DefaultSchedulerSpec = "0 2 * * *"
	DefaultHorizonDays   = 1
	maxPort              = 65535
)

// Config is the root configuration.
type Config struct {
	Service   ServiceConfig      `yaml:"service"`
	Server    ServerConfig       `yaml:"server"`
	Database  DatabaseConfig     `yaml:"database"`
	Redis     RedisConfig        `yaml:"redis"`
	Logging   infralogger.Config `yaml:"logging"`
	Planner   PlannerConfig      `yaml:"planner"`
	Timing    TimingConfig       `yaml:"timing"`
	Scheduler SchedulerConfig    `yaml:"scheduler"`
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Debug   bool   `env:"APP_DEBUG" yaml:"debug"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `env:"AUTO_NOTION_PORT" yaml:"port"`
	CORSOrigins []string `env:"CORS_ORIGINS"     yaml:"cors_origins"`
}

// DatabaseConfig configures PostgreSQL storage. Storage is optional; plan
// generation works without it.
type DatabaseConfig struct {
	Enabled         bool          `env:"POSTGRES_ENABLED"  yaml:"enabled"`
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            string        `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"` //nolint:gosec // G117: DB connection config
	DBName          string        `env:"POSTGRES_DB"       yaml:"dbname"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig configures the event channel.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"` //nolint:gosec // G117: Redis connection config
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Channel  string `yaml:"channel"`
}

// PlannerConfig configures plan generation.
type PlannerConfig struct {
	// StrategiesFile is an optional YAML file whose strategies are merged
	// over the built-in ones.
	StrategiesFile string `env:"PLANNER_STRATEGIES_FILE" yaml:"strategies_file"`
	DefaultPage    string `yaml:"default_page"`
	MaxDays        int    `env:"PLANNER_MAX_DAYS" yaml:"max_days"`
}

// TimingConfig configures the timing advisor.
type TimingConfig struct {
	// Location is an IANA zone name; empty means the host's local zone.
	Location string `env:"TIMING_LOCATION" yaml:"location"`
}

// SchedulerConfig configures the daily plan refresh.
type SchedulerConfig struct {
	Enabled        bool     `env:"SCHEDULER_ENABLED" yaml:"enabled"`
	Spec           string   `env:"SCHEDULER_SPEC"    yaml:"spec"`
	Pages          []string `yaml:"pages"`
	HorizonDays    int      `yaml:"horizon_days"`
	Align          bool     `yaml:"align"`
	PagesPerSecond float64  `yaml:"pages_per_second"`
}

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, true, SetDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid config: %w", validateErr)
	}

	return cfg, nil
}

// SetDefaults fills unset values.
func SetDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = DefaultServiceName
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	setDatabaseDefaults(&cfg.Database)
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = DefaultRedisAddress
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = DefaultRedisChannel
	}
	cfg.Logging.SetDefaults()
	if cfg.Service.Debug {
		cfg.Logging.Level = "debug"
	}
	if cfg.Planner.DefaultPage == "" {
		cfg.Planner.DefaultPage = DefaultPage
	}
	if cfg.Planner.MaxDays == 0 {
		cfg.Planner.MaxDays = DefaultMaxDays
	}
	if cfg.Scheduler.Spec == "" {
		cfg.Scheduler.Spec = DefaultSchedulerSpec
	}
	if cfg.Scheduler.HorizonDays == 0 {
		cfg.Scheduler.HorizonDays = DefaultHorizonDays
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = DefaultPostgresHost
	}
	if db.Port == "" {
		db.Port = DefaultPostgresPort
	}
	if db.User == "" {
		db.User = DefaultPostgresUser
	}
	if db.DBName == "" {
		db.DBName = DefaultPostgresDB
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultSSLMode
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d, got %d", maxPort, c.Server.Port)
	}
	if c.Planner.MaxDays <= 0 {
		return fmt.Errorf("planner.max_days must be positive, got %d", c.Planner.MaxDays)
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis.address is required when redis.enabled is true")
	}
	if _, err := c.Timing.LoadLocation(); err != nil {
		return fmt.Errorf("timing.location: %w", err)
	}
	return c.Scheduler.validate(c)
}

func (s SchedulerConfig) validate(c *Config) error {
	if !s.Enabled {
		return nil
	}
	if !c.Database.Enabled {
		return errors.New("scheduler requires database.enabled")
	}
	if s.HorizonDays <= 0 || s.HorizonDays > c.Planner.MaxDays {
		return fmt.Errorf("scheduler.horizon_days must be between 1 and %d, got %d", c.Planner.MaxDays, s.HorizonDays)
	}
	return nil
}

// LoadLocation resolves the configured zone.
func (t TimingConfig) LoadLocation() (*time.Location, error) {
	if t.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(t.Location)
}
