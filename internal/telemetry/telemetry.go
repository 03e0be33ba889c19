// Package telemetry exports Prometheus metrics for the planner.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

const namespace = "auto_notion"

// Metrics holds all planner Prometheus metrics
type Metrics struct {
	// Plan metrics
	PlansGenerated   *prometheus.CounterVec
	ItemsGenerated   *prometheus.CounterVec
	PlanDuration     prometheus.Histogram
	ItemsSaved       prometheus.Counter
	EventsPublished  *prometheus.CounterVec
	StatusTransition *prometheus.CounterVec

	// Audit metrics
	AuditsTotal *prometheus.CounterVec
	AuditScore  prometheus.Histogram

	// Refresh metrics
	RefreshRuns *prometheus.CounterVec
}

// Provider owns the registry the metrics are registered with.
type Provider struct {
	Metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewProvider registers metrics with a fresh registry that also carries the
// Go runtime and process collectors.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewProviderWith(reg, reg)
}

// NewProviderWith registers metrics with reg and serves them from gatherer.
func NewProviderWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Provider {
	return &Provider{
		Metrics:  initMetrics(promauto.With(reg)),
		gatherer: gatherer,
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func initMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		PlansGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Total content plans generated",
		}, []string{"page", "seeded"}),
		ItemsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_generated_total",
			Help:      "Total content items generated by format",
		}, []string{"page", "format"}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time to generate a content plan",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		ItemsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_saved_total",
			Help:      "Total content items persisted",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total content events published",
		}, []string{"type", "result"}),
		StatusTransition: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Total content status transitions",
		}, []string{"status"}),
		AuditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_total",
			Help:      "Total texts audited by frequency tier",
		}, []string{"frequency", "passed"}),
		AuditScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_score",
			Help:      "Distribution of audit scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		RefreshRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Total scheduled refresh runs per page",
		}, []string{"page", "result"}),
	}
}

// RecordPlan records a generated plan.
func (p *Provider) RecordPlan(page string, seeded bool, items []domain.ContentItem, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.PlansGenerated.WithLabelValues(page, strconv.FormatBool(seeded)).Inc()
	p.Metrics.PlanDuration.Observe(duration.Seconds())
	for _, item := range items {
		p.Metrics.ItemsGenerated.WithLabelValues(page, string(item.Format)).Inc()
	}
}

// RecordAudit records one audit result.
func (p *Provider) RecordAudit(result domain.AuditResult) {
	if p == nil {
		return
	}
	p.Metrics.AuditsTotal.WithLabelValues(string(result.Frequency), strconv.FormatBool(result.Passed)).Inc()
	p.Metrics.AuditScore.Observe(float64(result.Score))
}

// RecordSaved records persisted items.
func (p *Provider) RecordSaved(n int) {
	if p == nil {
		return
	}
	p.Metrics.ItemsSaved.Add(float64(n))
}

// RecordEvent records a publish attempt.
func (p *Provider) RecordEvent(eventType string, err error) {
	if p == nil {
		return
	}
	p.Metrics.EventsPublished.WithLabelValues(eventType, result(err)).Inc()
}

// RecordStatus records a status transition.
func (p *Provider) RecordStatus(status domain.ContentStatus) {
	if p == nil {
		return
	}
	p.Metrics.StatusTransition.WithLabelValues(string(status)).Inc()
}

// RecordRefresh records one page refresh.
func (p *Provider) RecordRefresh(page string, err error) {
	if p == nil {
		return
	}
	p.Metrics.RefreshRuns.WithLabelValues(page, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
