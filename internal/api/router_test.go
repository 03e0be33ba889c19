package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendev-labs/auto-notion/internal/api"
	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/export"
	infragin "github.com/opendev-labs/auto-notion/internal/infrastructure/gin"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/planner"
	"github.com/opendev-labs/auto-notion/internal/telemetry"
	"github.com/opendev-labs/auto-notion/internal/timing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type memStore struct {
	mu    sync.Mutex
	items map[string]domain.ContentItem
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]domain.ContentItem)}
}

func (m *memStore) SaveItems(_ context.Context, items []domain.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if _, ok := m.items[item.ID]; ok {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, item.ID)
		}
	}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return nil
}

func (m *memStore) SaveNewItems(ctx context.Context, items []domain.ContentItem) ([]domain.ContentItem, error) {
	if err := m.SaveItems(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (domain.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return domain.ContentItem{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return item, nil
}

func (m *memStore) ListByPage(_ context.Context, page, _ string, _ int) ([]domain.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ContentItem
	for _, item := range m.items {
		if item.PageName == page {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, from, to domain.ContentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.Status != from {
		return domain.ErrInvalidStatus
	}
	item.Status = to
	m.items[id] = item
	return nil
}

func newEngine(store planner.PlanStore, middleware ...gin.HandlerFunc) *gin.Engine {
	reg := prometheus.NewRegistry()
	provider := telemetry.NewProviderWith(reg, reg)
	svc := planner.NewService(planner.Deps{
		Store:     store,
		Advisor:   timing.New(timing.WithLocation(time.UTC)),
		Telemetry: provider,
		Clock:     func() time.Time { return fixedNow },
	})

	engine := gin.New()
	engine.Use(middleware...)
	api.NewRouter(svc, provider.Handler()).SetupRoutes(engine)
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestListStrategies(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(nil), http.MethodGet, "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Strategies []string `json:"strategies"`
		Count      int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Count)
	assert.Contains(t, resp.Strategies, "MythicWisdom")
}

func TestGetStrategy_Fallback(t *testing.T) {
	t.Parallel()

	engine := newEngine(nil)

	var resp struct {
		Strategy domain.ContentStrategy `json:"strategy"`
		Fallback bool                   `json:"fallback"`
	}

	w := do(t, engine, http.MethodGet, "/api/v1/strategies/CrystalEnergy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CrystalEnergy", resp.Strategy.PageName)
	assert.False(t, resp.Fallback)

	w = do(t, engine, http.MethodGet, "/api/v1/strategies/NoSuchPage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MythicWisdom", resp.Strategy.PageName)
	assert.True(t, resp.Fallback)
}

func TestCreatePlan(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(nil), http.MethodPost, "/api/v1/plans", map[string]any{
		"page_name": "MythicWisdom",
		"days":      2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "MythicWisdom", plan.Page)
	assert.Len(t, plan.Items, 6)
	assert.False(t, plan.Saved)
}

func TestCreatePlan_SeededIsReproducible(t *testing.T) {
	t.Parallel()

	engine := newEngine(nil)
	body := map[string]any{"page_name": "WeAreOneGlobal", "days": 1, "seed": 42}

	first := do(t, engine, http.MethodPost, "/api/v1/plans", body)
	second := do(t, engine, http.MethodPost, "/api/v1/plans", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCreatePlan_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "zero days", body: map[string]any{"page_name": "MythicWisdom", "days": 0}, status: http.StatusBadRequest},
		{name: "too many days", body: map[string]any{"page_name": "MythicWisdom", "days": 366}, status: http.StatusBadRequest},
		{name: "malformed body", body: "not an object", status: http.StatusBadRequest},
		{name: "save without storage", body: map[string]any{"page_name": "MythicWisdom", "days": 1, "save": true}, status: http.StatusServiceUnavailable},
	}

	engine := newEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, engine, http.MethodPost, "/api/v1/plans", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestPlanLifecycle(t *testing.T) {
	t.Parallel()

	engine := newEngine(newMemStore())

	w := do(t, engine, http.MethodPost, "/api/v1/plans", map[string]any{
		"page_name": "CrystalEnergy",
		"days":      1,
		"seed":      7,
		"save":      true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.NotEmpty(t, plan.Items)
	assert.True(t, plan.Saved)

	// Same seed and day produce the same ids.
	w = do(t, engine, http.MethodPost, "/api/v1/plans", map[string]any{
		"page_name": "CrystalEnergy",
		"days":      1,
		"seed":      7,
		"save":      true,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, engine, http.MethodGet, "/api/v1/plans/CrystalEnergy?from=2025-03-10&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":`+fmt.Sprint(len(plan.Items)))

	w = do(t, engine, http.MethodGet, "/api/v1/plans/CrystalEnergy/export?from=2025-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())

	id := plan.Items[0].ID
	path := "/api/v1/content/" + id + "/status"

	w = do(t, engine, http.MethodPatch, path, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	var item domain.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, domain.StatusApproved, item.Status)

	w = do(t, engine, http.MethodPatch, path, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPatch, path, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPatch, "/api/v1/content/missing/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportPlanItems_NoStorage(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(nil), http.MethodGet, "/api/v1/plans/MythicWisdom/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListPlanItems_InvalidLimit(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(newMemStore()), http.MethodGet, "/api/v1/plans/MythicWisdom?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPlanItems_InvalidFrom(t *testing.T) {
	t.Parallel()

	engine := newEngine(newMemStore())
	for _, path := range []string{
		"/api/v1/plans/MythicWisdom?from=2025-13-45",
		"/api/v1/plans/MythicWisdom?from=yesterday",
		"/api/v1/plans/MythicWisdom/export?from=10/03/2025",
	} {
		w := do(t, engine, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "invalid from parameter", path)
	}
}

func TestExportPlanItems_QuotesFilename(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(newMemStore()), http.MethodGet, "/api/v1/plans/Evil%22Page%3B%20x=1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `Evil"Page; x=1-calendar.xlsx`, params["filename"])
	assert.NotContains(t, params, "x")
}

type failingStore struct {
	*memStore
}

func (failingStore) ListByPage(context.Context, string, string, int) ([]domain.ContentItem, error) {
	return nil, errors.New("connection reset by peer")
}

type recordingLogger struct {
	infralogger.Logger
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(msg string, _ ...infralogger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) With(...infralogger.Field) infralogger.Logger { return l }

func TestListPlanItems_StoreFailureIsLogged(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{Logger: infralogger.NewNop()}
	engine := newEngine(failingStore{newMemStore()}, infragin.RequestIDLoggerMiddleware(log))

	w := do(t, engine, http.MethodGet, "/api/v1/plans/MythicWisdom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to list content item")
	assert.NotContains(t, w.Body.String(), "connection reset")

	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Equal(t, []string{"request failed"}, log.errors)
}

func TestAudit(t *testing.T) {
	t.Parallel()

	w := do(t, newEngine(nil), http.MethodPost, "/api/v1/audit", map[string]string{
		"text": "hate fear anger",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result      domain.AuditResult `json:"result"`
		Suggestions []string           `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Result.Score)
	assert.False(t, resp.Result.Passed)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestAuditReport(t *testing.T) {
	t.Parallel()

	engine := newEngine(nil)

	w := do(t, engine, http.MethodPost, "/api/v1/audit/report", map[string]any{
		"texts": []string{
			"Awaken your consciousness and integrate divine wisdom into daily life with clarity and truth.",
			"hate fear anger",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.ComplianceReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.PassedCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.InDelta(t, 50.0, report.OverallCompliance, 0.001)

	w = do(t, engine, http.MethodPost, "/api/v1/audit/report", map[string]any{"texts": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTiming(t *testing.T) {
	t.Parallel()

	engine := newEngine(nil)

	w := do(t, engine, http.MethodGet, "/api/v1/timing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap planner.TimingSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.At.Equal(fixedNow))
	assert.NotEmpty(t, snap.Phase.Name)

	w = do(t, engine, http.MethodGet, "/api/v1/timing/windows?days=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Windows []domain.CosmicWindow `json:"windows"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.Count, 4)
	assert.Len(t, resp.Windows, resp.Count)

	w = do(t, engine, http.MethodGet, "/api/v1/timing/windows?days=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	engine := newEngine(nil)
	do(t, engine, http.MethodPost, "/api/v1/plans", map[string]any{"page_name": "MythicWisdom", "days": 1})

	w := do(t, engine, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plans_generated_total")
}
