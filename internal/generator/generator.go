// Package generator expands a page strategy into a dated content plan.
package generator

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"maps"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opendev-labs/auto-notion/internal/auditor"
	"github.com/opendev-labs/auto-notion/internal/domain"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/strategy"
)

const (
	// DefaultMaxDays caps a plan at one year.
	DefaultMaxDays = 365

	dateLayout = "2006-01-02"
	day        = 24 * time.Hour

	// pcgStream is the second PCG word for seeded sources.
	pcgStream = 0x9e3779b97f4a7c15
)

// seededIDSpace namespaces the ids of seeded plans.
var seededIDSpace = uuid.MustParse("6f1f2a43-2b8e-4f8a-9c51-6b0d7f3e2a10")

// Generator builds content plans. It is safe for concurrent use.
type Generator struct {
	registry       *strategy.Registry
	themes         map[domain.Theme]ThemeFunc
	auditors       map[domain.Theme]*auditor.Auditor
	defaultAuditor *auditor.Auditor
	clock          func() time.Time
	newID          func() string
	maxDays        int
	logger         infralogger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the source of the generation instant.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithRand sets the random source used by GeneratePlan.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithIDFunc sets the item id factory used by GeneratePlan.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// WithAuditor sets the auditor for themes without their own rule set.
func WithAuditor(a *auditor.Auditor) Option {
	return func(g *Generator) { g.defaultAuditor = a }
}

// WithThemeAuditor sets the auditor used for one theme.
func WithThemeAuditor(theme domain.Theme, a *auditor.Auditor) Option {
	return func(g *Generator) { g.auditors[theme] = a }
}

// WithTheme registers or replaces the draft function of a theme.
func WithTheme(theme domain.Theme, fn ThemeFunc) Option {
	return func(g *Generator) { g.themes[theme] = fn }
}

// WithMaxDays sets the plan length limit.
func WithMaxDays(maxDays int) Option {
	return func(g *Generator) { g.maxDays = maxDays }
}

// WithLogger sets the logger.
func WithLogger(log infralogger.Logger) Option {
	return func(g *Generator) { g.logger = log }
}

// New creates a generator over registry.
func New(registry *strategy.Registry, opts ...Option) *Generator {
	g := &Generator{
		registry:       registry,
		themes:         defaultThemes(),
		auditors:       make(map[domain.Theme]*auditor.Auditor),
		defaultAuditor: auditor.New(),
		clock:          time.Now,
		newID:          uuid.NewString,
		maxDays:        DefaultMaxDays,
		logger:         infralogger.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// MaxDays returns the plan length limit.
func (g *Generator) MaxDays() int {
	return g.maxDays
}

// GeneratePlan builds a days-long plan for the named page using the
// generator's shared random source.
func (g *Generator) GeneratePlan(name string, days int) ([]domain.ContentItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.generate(name, days, g.rng, func(string, string, int) string { return g.newID() })
}

// GeneratePlanSeeded builds a plan from a private source seeded with seed.
// The same name, days, seed and generation date always yield the same plan,
// ids included.
func (g *Generator) GeneratePlanSeeded(name string, days int, seed uint64) ([]domain.ContentItem, error) {
	rng := rand.New(rand.NewPCG(seed, pcgStream))
	seededID := func(date, slot string, n int) string {
		key := fmt.Sprintf("%s/%s/%s/%d/%d", name, date, slot, n, seed)
		return uuid.NewSHA1(seededIDSpace, []byte(key)).String()
	}
	return g.generate(name, days, rng, seededID)
}

func (g *Generator) generate(
	name string,
	days int,
	rng *rand.Rand,
	newID func(date, slot string, n int) string,
) ([]domain.ContentItem, error) {
	if days <= 0 || days > g.maxDays {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", domain.ErrInvalidDays, days, g.maxDays)
	}

	// Registry construction validates every strategy.
	s := g.registry.Get(name)

	themeFn, ok := g.themes[s.Theme]
	if !ok {
		themeFn = genericDraft
	}
	audit := g.auditorFor(s.Theme)

	start := g.clock().UTC().Truncate(day)
	items := make([]domain.ContentItem, 0, days*len(s.PostingSchedule))

	for offset := range days {
		date := start.AddDate(0, 0, offset).Format(dateLayout)
		for n, slot := range s.PostingSchedule {
			format := SelectFormat(s.ContentMix, rng)
			draft := themeFn(format, rng)
			items = append(items, buildItem(s, date, slot, format, draft, newID(date, slot, n), audit))
		}
	}

	g.logger.Debug("content plan generated",
		infralogger.String("page_name", s.PageName),
		infralogger.String("requested", name),
		infralogger.Int("days", days),
		infralogger.Int("items", len(items)),
	)

	return items, nil
}

func (g *Generator) auditorFor(theme domain.Theme) *auditor.Auditor {
	if a, ok := g.auditors[theme]; ok && a != nil {
		return a
	}
	return g.defaultAuditor
}

func buildItem(
	s domain.ContentStrategy,
	date, slot string,
	format domain.Format,
	d Draft,
	id string,
	audit *auditor.Auditor,
) domain.ContentItem {
	return domain.ContentItem{
		ID:                  id,
		Type:                d.Type,
		PageName:            s.PageName,
		Theme:               s.Theme,
		TargetAudience:      s.TargetAudience,
		ScheduledDate:       date,
		ScheduledTime:       slot,
		Format:              format,
		PrimaryText:         d.PrimaryText,
		SecondaryText:       d.SecondaryText,
		VisualConcept:       d.VisualConcept,
		ColorPalette:        d.ColorPalette,
		Slides:              d.Slides,
		HashtagStrategy:     d.HashtagStrategy,
		CallToAction:        d.CallToAction,
		Disclaimer:          d.Disclaimer,
		EngagementQuestions: d.EngagementQuestions,
		EngagementGoals:     maps.Clone(s.EngagementGoals),
		ComplianceCheck:     audit.Audit(d.PrimaryText),
		Status:              domain.StatusPending,
	}
}

// SelectFormat picks a format by cumulative-weight roulette over mix in
// declaration order. It returns the first format when rounding leaves the
// draw unassigned.
func SelectFormat(mix domain.ContentMix, rng *rand.Rand) domain.Format {
	remaining := rng.Float64() * mix.TotalWeight()
	for _, fw := range mix {
		remaining -= fw.Weight
		if remaining <= 0 {
			return fw.Format
		}
	}
	return mix[0].Format
}

// SeedFor derives a stable seed for a page on a calendar day.
func SeedFor(pageName string, date time.Time) uint64 {
	sum := sha256.Sum256([]byte("auto-notion/" + pageName + "/" + date.UTC().Format(dateLayout)))
	return binary.BigEndian.Uint64(sum[:8])
}
