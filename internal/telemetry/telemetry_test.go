package telemetry_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
)

func newTestProvider() *telemetry.Provider {
	reg := prometheus.NewRegistry()
	return telemetry.NewProviderWith(reg, reg)
}

func TestRecordPlan(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	items := []domain.ContentItem{
		{Format: domain.FormatQuoteImage},
		{Format: domain.FormatQuoteImage},
		{Format: domain.FormatStoryVideo},
	}
	p.RecordPlan("MythicWisdom", false, items, 2*time.Millisecond)

	if got := testutil.ToFloat64(p.Metrics.PlansGenerated.WithLabelValues("MythicWisdom", "false")); got != 1 {
		t.Errorf("plans generated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.Metrics.ItemsGenerated.WithLabelValues("MythicWisdom", "quote_image")); got != 2 {
		t.Errorf("quote items = %v, want 2", got)
	}
}

func TestRecordAuditAndEvents(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	p.RecordAudit(domain.AuditResult{Score: 90, Passed: true, Frequency: domain.TierHigh})
	p.RecordEvent("content.planned", nil)
	p.RecordEvent("content.planned", errors.New("boom"))
	p.RecordRefresh("MythicWisdom", nil)
	p.RecordStatus(domain.StatusApproved)
	p.RecordSaved(3)

	if got := testutil.ToFloat64(p.Metrics.AuditsTotal.WithLabelValues("high", "true")); got != 1 {
		t.Errorf("audits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.Metrics.EventsPublished.WithLabelValues("content.planned", "error")); got != 1 {
		t.Errorf("failed events = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.Metrics.ItemsSaved); got != 3 {
		t.Errorf("items saved = %v, want 3", got)
	}
}

func TestNilProvider(t *testing.T) {
	t.Parallel()

	var p *telemetry.Provider
	// Should not panic
	p.RecordPlan("x", true, nil, time.Second)
	p.RecordAudit(domain.AuditResult{})
	p.RecordEvent("x", nil)
	p.RecordRefresh("x", nil)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	p.RecordSaved(1)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "auto_notion_items_saved_total 1") {
		t.Errorf("metrics output missing items_saved_total:\n%s", rec.Body.String())
	}
}
