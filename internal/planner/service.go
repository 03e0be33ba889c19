// Package planner orchestrates plan generation, review and publication.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opendev-labs/auto-notion/internal/auditor"
	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/generator"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/strategy"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
	"github.com/opendev-labs/auto-notion/internal/timing"
)

// ErrStorageDisabled is returned by operations that need a PlanStore when
// none is configured.
var ErrStorageDisabled = errors.New("content storage is not configured")

// PlanStore persists generated items.
type PlanStore interface {
	SaveItems(ctx context.Context, items []domain.ContentItem) error
	SaveNewItems(ctx context.Context, items []domain.ContentItem) ([]domain.ContentItem, error)
	GetByID(ctx context.Context, id string) (domain.ContentItem, error)
	ListByPage(ctx context.Context, page, fromDate string, limit int) ([]domain.ContentItem, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ContentStatus) error
}

// EventPublisher announces plan and status changes to downstream consumers.
type EventPublisher interface {
	PublishPlanned(ctx context.Context, page string, items []domain.ContentItem) error
	PublishStatus(ctx context.Context, item domain.ContentItem) error
}

// PlanRequest describes a plan to generate.
type PlanRequest struct {
	Page string
	Days int
	// Seed makes the plan reproducible when set.
	Seed  *uint64
	Align bool
	Save  bool
	// SkipScheduled stores only items whose page slot is still free. The
	// plan then holds just the stored items.
	SkipScheduled bool
}

// Plan is a generated plan.
type Plan struct {
	Page      string               `json:"page_name"`
	Requested string               `json:"requested_page"`
	Days      int                  `json:"days"`
	Seed      *uint64              `json:"seed,omitempty"`
	Aligned   bool                 `json:"aligned"`
	Saved     bool                 `json:"saved"`
	Items     []domain.ContentItem `json:"items"`
}

// TimingSnapshot bundles the timing answers for one instant.
type TimingSnapshot struct {
	At             time.Time                   `json:"at"`
	Phase          domain.LunarPhase           `json:"phase"`
	IsAuspicious   bool                        `json:"is_auspicious"`
	Recommendation domain.TimingRecommendation `json:"recommendation"`
}

// Service is the planner's application service.
type Service struct {
	registry  *strategy.Registry
	generator *generator.Generator
	auditor   *auditor.Auditor
	advisor   *timing.Advisor
	store     PlanStore
	publisher EventPublisher
	telemetry *telemetry.Provider
	logger    infralogger.Logger
	clock     func() time.Time
}

// Deps are the collaborators of a Service. Store, Publisher and Telemetry
// are optional.
type Deps struct {
	Registry  *strategy.Registry
	Generator *generator.Generator
	Auditor   *auditor.Auditor
	Advisor   *timing.Advisor
	Store     PlanStore
	Publisher EventPublisher
	Telemetry *telemetry.Provider
	Logger    infralogger.Logger
	Clock     func() time.Time
}

// NewService creates a Service, filling unset required collaborators with
// defaults.
func NewService(deps Deps) *Service {
	s := &Service{
		registry:  deps.Registry,
		generator: deps.Generator,
		auditor:   deps.Auditor,
		advisor:   deps.Advisor,
		store:     deps.Store,
		publisher: deps.Publisher,
		telemetry: deps.Telemetry,
		logger:    deps.Logger,
		clock:     deps.Clock,
	}
	if s.registry == nil {
		s.registry = strategy.Default()
	}
	if s.logger == nil {
		s.logger = infralogger.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.auditor == nil {
		s.auditor = auditor.New()
	}
	if s.advisor == nil {
		s.advisor = timing.New()
	}
	if s.generator == nil {
		s.generator = generator.New(s.registry,
			generator.WithClock(s.clock),
			generator.WithAuditor(s.auditor),
			generator.WithLogger(s.logger),
		)
	}
	return s
}

// HasStore reports whether persistence is configured.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Strategies returns the registered page names.
func (s *Service) Strategies() []string {
	return s.registry.Names()
}

// Strategy resolves a page strategy. found is false when the default
// strategy was substituted.
func (s *Service) Strategy(name string) (strat domain.ContentStrategy, found bool) {
	if strat, found = s.registry.Lookup(name); found {
		return strat, true
	}
	return s.registry.Get(name), false
}

// Plan generates a plan and optionally aligns, stores and announces it.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (Plan, error) {
	if req.Save && s.store == nil {
		return Plan{}, ErrStorageDisabled
	}

	start := time.Now()
	var (
		items []domain.ContentItem
		err   error
	)
	if req.Seed != nil {
		items, err = s.generator.GeneratePlanSeeded(req.Page, req.Days, *req.Seed)
	} else {
		items, err = s.generator.GeneratePlan(req.Page, req.Days)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("generate plan: %w", err)
	}

	if req.Align {
		items = s.advisor.Align(items, s.clock())
	}

	page := s.registry.Get(req.Page).PageName
	s.telemetry.RecordPlan(page, req.Seed != nil, items, time.Since(start))
	for i := range items {
		s.telemetry.RecordAudit(items[i].ComplianceCheck)
	}

	plan := Plan{
		Page:      page,
		Requested: req.Page,
		Days:      req.Days,
		Seed:      req.Seed,
		Aligned:   req.Align,
		Items:     items,
	}

	if !req.Save {
		return plan, nil
	}

	if req.SkipScheduled {
		stored, saveErr := s.store.SaveNewItems(ctx, items)
		if saveErr != nil {
			return Plan{}, fmt.Errorf("save plan: %w", saveErr)
		}
		if len(stored) == 0 {
			return Plan{}, fmt.Errorf("save plan: %w: every slot of %s is already scheduled",
				domain.ErrAlreadyExists, page)
		}
		items = stored
		plan.Items = stored
	} else if saveErr := s.store.SaveItems(ctx, items); saveErr != nil {
		return Plan{}, fmt.Errorf("save plan: %w", saveErr)
	}
	s.telemetry.RecordSaved(len(items))
	plan.Saved = true

	s.logger.Info("content plan saved",
		infralogger.String("page_name", page),
		infralogger.Int("days", req.Days),
		infralogger.Int("items", len(items)),
	)

	if s.publisher != nil {
		pubErr := s.publisher.PublishPlanned(ctx, page, items)
		s.telemetry.RecordEvent("content.planned", pubErr)
		if pubErr != nil {
			s.logger.Warn("failed to publish plan event",
				infralogger.String("page_name", page),
				infralogger.Error(pubErr),
			)
		}
	}

	return plan, nil
}

// Items lists stored items for page scheduled on or after fromDate.
func (s *Service) Items(ctx context.Context, page, fromDate string, limit int) ([]domain.ContentItem, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	return s.store.ListByPage(ctx, page, fromDate, limit)
}

// SetStatus moves a stored item through the review workflow and announces
// the change.
func (s *Service) SetStatus(ctx context.Context, id string, to domain.ContentStatus) (domain.ContentItem, error) {
	if s.store == nil {
		return domain.ContentItem{}, ErrStorageDisabled
	}

	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.ContentItem{}, err
	}

	if !item.Status.CanTransition(to) {
		return domain.ContentItem{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, item.Status, to)
	}

	if updateErr := s.store.UpdateStatus(ctx, id, item.Status, to); updateErr != nil {
		return domain.ContentItem{}, updateErr
	}
	item.Status = to
	s.telemetry.RecordStatus(to)

	s.logger.Info("content status changed",
		infralogger.String("id", id),
		infralogger.String("page_name", item.PageName),
		infralogger.String("status", string(to)),
	)

	if s.publisher != nil {
		pubErr := s.publisher.PublishStatus(ctx, item)
		s.telemetry.RecordEvent("content."+string(to), pubErr)
		if pubErr != nil {
			s.logger.Warn("failed to publish status event",
				infralogger.String("id", id),
				infralogger.Error(pubErr),
			)
		}
	}

	return item, nil
}

// Audit scores text and returns improvement suggestions.
func (s *Service) Audit(text string) (domain.AuditResult, []string) {
	result := s.auditor.Audit(text)
	s.telemetry.RecordAudit(result)
	return result, s.auditor.Suggest(text)
}

// Report audits a batch of texts.
func (s *Service) Report(texts []string) (domain.ComplianceReport, error) {
	return s.auditor.Report(texts)
}

// Timing returns the timing snapshot at the current instant.
func (s *Service) Timing() TimingSnapshot {
	now := s.clock()
	return TimingSnapshot{
		At:             now,
		Phase:          s.advisor.Phase(now),
		IsAuspicious:   s.advisor.IsAuspicious(now),
		Recommendation: s.advisor.Recommend(now),
	}
}

// Windows returns posting windows for days days starting now.
func (s *Service) Windows(days int) ([]domain.CosmicWindow, error) {
	return s.advisor.Windows(s.clock(), days)
}
