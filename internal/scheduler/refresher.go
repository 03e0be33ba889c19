// Package scheduler regenerates and stores page plans on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/generator"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/planner"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
)

// Defaults for Config.
const (
	DefaultSpec           = "0 2 * * *"
	DefaultHorizonDays    = 1
	DefaultPagesPerSecond = 5
)

// Planner is the subset of the planner service the refresher drives.
type Planner interface {
	Plan(ctx context.Context, req planner.PlanRequest) (planner.Plan, error)
	Strategies() []string
}

// Config controls what is refreshed and when.
type Config struct {
	// Spec is a standard 5-field cron expression.
	Spec string
	// Pages to refresh; empty means every registered page.
	Pages          []string
	HorizonDays    int
	Align          bool
	PagesPerSecond float64 // paces plan saves against the store
}

// Result summarizes one refresh run.
type Result struct {
	Refreshed []string
	Skipped   []string
	Failed    []string
}

// Refresher saves a deterministic plan for each page on every cron tick.
type Refresher struct {
	cfg       Config
	planner   Planner
	telemetry *telemetry.Provider
	logger    infralogger.Logger
	clock     func() time.Time
	cron      *cron.Cron
	limiter   *rate.Limiter

	mu      sync.Mutex
	running bool
}

// New validates cfg and creates a Refresher.
func New(cfg Config, p Planner, tp *telemetry.Provider, log infralogger.Logger) (*Refresher, error) {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = DefaultHorizonDays
	}
	if cfg.PagesPerSecond <= 0 {
		cfg.PagesPerSecond = DefaultPagesPerSecond
	}
	if log == nil {
		log = infralogger.NewNop()
	}

	// Use standard 5-field cron parser (minute hour day month weekday)
	cronParser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := cronParser.Parse(cfg.Spec); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.Spec, err)
	}

	return &Refresher{
		cfg:       cfg,
		planner:   p,
		telemetry: tp,
		logger:    log,
		clock:     time.Now,
		cron:      cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		limiter:   rate.NewLimiter(rate.Limit(cfg.PagesPerSecond), int(math.Ceil(cfg.PagesPerSecond))),
	}, nil
}

// SetClock replaces the clock used to derive plan seeds.
func (r *Refresher) SetClock(clock func() time.Time) {
	r.clock = clock
}

// Start schedules the refresh job. Runs use ctx and stop when it is done.
func (r *Refresher) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.cfg.Spec, func() {
		if ctx.Err() != nil {
			return
		}
		r.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	r.cron.Start()
	r.logger.Info("plan refresher started",
		infralogger.String("spec", r.cfg.Spec),
		infralogger.Int("horizon_days", r.cfg.HorizonDays),
	)
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("plan refresher stopped")
}

// RunOnce refreshes every configured page. A failure on one page does not
// stop the others. Overlapping runs are skipped.
func (r *Refresher) RunOnce(ctx context.Context) Result {
	var res Result

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Warn("refresh already running, skipping")
		return res
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	pages := r.cfg.Pages
	if len(pages) == 0 {
		pages = r.planner.Strategies()
	}
	today := r.clock()

	for _, page := range pages {
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Warn("plan refresh interrupted",
				infralogger.String("page_name", page),
				infralogger.Error(err),
			)
			break
		}

		seed := generator.SeedFor(page, today)
		_, err := r.planner.Plan(ctx, planner.PlanRequest{
			Page:          page,
			Days:          r.cfg.HorizonDays,
			Seed:          &seed,
			Align:         r.cfg.Align,
			Save:          true,
			SkipScheduled: true,
		})

		switch {
		case err == nil:
			res.Refreshed = append(res.Refreshed, page)
			r.telemetry.RecordRefresh(page, nil)
		case errors.Is(err, domain.ErrAlreadyExists):
			res.Skipped = append(res.Skipped, page)
			r.logger.Info("every slot in the refresh horizon is already scheduled",
				infralogger.String("page_name", page),
			)
		default:
			res.Failed = append(res.Failed, page)
			r.telemetry.RecordRefresh(page, err)
			r.logger.Error("plan refresh failed",
				infralogger.String("page_name", page),
				infralogger.Error(err),
			)
		}
	}

	r.logger.Info("plan refresh complete",
		infralogger.Int("refreshed", len(res.Refreshed)),
		infralogger.Int("skipped", len(res.Skipped)),
		infralogger.Int("failed", len(res.Failed)),
	)
	return res
}
