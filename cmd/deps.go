package cmd

import (
	"fmt"

	"github.com/opendev-labs/auto-notion/internal/auditor"
	"github.com/opendev-labs/auto-notion/internal/config"
	"github.com/opendev-labs/auto-notion/internal/database"
	"github.com/opendev-labs/auto-notion/internal/events"
	"github.com/opendev-labs/auto-notion/internal/generator"
	infraconfig "github.com/opendev-labs/auto-notion/internal/infrastructure/config"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/planner"
	"github.com/opendev-labs/auto-notion/internal/strategy"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
	"github.com/opendev-labs/auto-notion/internal/timing"
)

// commandDeps holds the dependencies every command needs.
type commandDeps struct {
	Config *config.Config
	Logger infralogger.Logger
}

// newCommandDeps loads configuration and builds the logger. Offline commands
// log to stderr so stdout carries only command output.
func newCommandDeps(opts *rootOptions, logToStderr bool) (*commandDeps, error) {
	path := opts.configPath
	if path == "" {
		path = infraconfig.GetConfigPath(config.DefaultConfigPath)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
	if logToStderr {
		cfg.Logging.OutputPaths = []string{"stderr"}
	}

	log, err := infralogger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &commandDeps{Config: cfg, Logger: log.With(infralogger.String("service", cfg.Service.Name))}, nil
}

// buildRegistry returns the built-in strategies merged with the configured
// strategies file, if any.
func buildRegistry(cfg config.PlannerConfig) (*strategy.Registry, error) {
	reg, err := strategy.NewRegistry(cfg.DefaultPage, strategy.Builtin()...)
	if err != nil {
		return nil, fmt.Errorf("build strategy registry: %w", err)
	}
	if cfg.StrategiesFile == "" {
		return reg, nil
	}

	extra, err := strategy.LoadFile(cfg.StrategiesFile)
	if err != nil {
		return nil, err
	}
	merged, err := reg.Merge(extra...)
	if err != nil {
		return nil, fmt.Errorf("merge strategies from %s: %w", cfg.StrategiesFile, err)
	}
	return merged, nil
}

// newService wires the planner service. store, pub and tp may be nil.
func newService(
	deps *commandDeps,
	store planner.PlanStore,
	pub planner.EventPublisher,
	tp *telemetry.Provider,
) (*planner.Service, error) {
	reg, err := buildRegistry(deps.Config.Planner)
	if err != nil {
		return nil, err
	}

	loc, err := deps.Config.Timing.LoadLocation()
	if err != nil {
		return nil, fmt.Errorf("load timing location: %w", err)
	}

	aud := auditor.New()
	gen := generator.New(reg,
		generator.WithAuditor(aud),
		generator.WithMaxDays(deps.Config.Planner.MaxDays),
		generator.WithLogger(deps.Logger),
	)

	return planner.NewService(planner.Deps{
		Registry:  reg,
		Generator: gen,
		Auditor:   aud,
		Advisor:   timing.New(timing.WithLocation(loc)),
		Store:     store,
		Publisher: pub,
		Telemetry: tp,
		Logger:    deps.Logger,
	}), nil
}

func databaseConfig(cfg config.DatabaseConfig) database.Config {
	return database.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		DBName:          cfg.DBName,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}

func redisConfig(cfg config.RedisConfig) events.Config {
	return events.Config{
		Address:  cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
