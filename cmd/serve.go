package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opendev-labs/auto-notion/internal/api"
	"github.com/opendev-labs/auto-notion/internal/database"
	"github.com/opendev-labs/auto-notion/internal/events"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/planner"
	"github.com/opendev-labs/auto-notion/internal/scheduler"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled plan refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newCommandDeps(opts, false)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, deps)
		},
	}
}

func runServer(ctx context.Context, deps *commandDeps) error {
	cfg := deps.Config
	log := deps.Logger
	tp := telemetry.NewProvider()
	healthChecks := make(map[string]func(context.Context) error)

	var store planner.PlanStore
	if cfg.Database.Enabled {
		db, err := database.NewPostgresConnection(ctx, databaseConfig(cfg.Database))
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() {
			if closeErr := database.Close(db); closeErr != nil {
				log.Error("Failed to close database", infralogger.Error(closeErr))
			}
		}()

		repo := database.NewContentRepository(db)
		store = repo
		healthChecks["database"] = repo.Ping
		log.Info("Connected to database",
			infralogger.String("host", cfg.Database.Host),
			infralogger.String("database", cfg.Database.DBName),
		)
	}

	var pub planner.EventPublisher
	if cfg.Redis.Enabled {
		client, err := events.NewClient(ctx, redisConfig(cfg.Redis))
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = client.Close() }()

		pub = events.NewPublisher(client, cfg.Redis.Channel)
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info("Connected to Redis", infralogger.String("address", cfg.Redis.Address))
	}

	svc, err := newService(deps, store, pub, tp)
	if err != nil {
		return err
	}

	if cfg.Scheduler.Enabled {
		refresher, refErr := scheduler.New(scheduler.Config{
			Spec:           cfg.Scheduler.Spec,
			Pages:          cfg.Scheduler.Pages,
			HorizonDays:    cfg.Scheduler.HorizonDays,
			Align:          cfg.Scheduler.Align,
			PagesPerSecond: cfg.Scheduler.PagesPerSecond,
		}, svc, tp, log)
		if refErr != nil {
			return refErr
		}
		if startErr := refresher.Start(ctx); startErr != nil {
			return startErr
		}
		defer refresher.Stop()
	}

	server := api.NewRouter(svc, tp.Handler()).NewServer(log, api.ServerOptions{
		Port:         cfg.Server.Port,
		Debug:        cfg.Service.Debug,
		Version:      Version,
		CORSOrigins:  cfg.Server.CORSOrigins,
		HealthChecks: healthChecks,
	})

	log.Info("Starting auto-notion",
		infralogger.Int("port", cfg.Server.Port),
		infralogger.Bool("storage", store != nil),
		infralogger.Bool("events", pub != nil),
		infralogger.Bool("scheduler", cfg.Scheduler.Enabled),
	)

	return server.RunWithGracefulShutdown(ctx)
}
