// Package api exposes the planner over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opendev-labs/auto-notion/internal/planner"
	infragin "github.com/opendev-labs/auto-notion/internal/infrastructure/gin"
	"github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
)

// Default timeout and query constants.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	healthCheckTimeout  = 2 * time.Second
	defaultPlanDays     = 7
	defaultWindowDays   = 7
	serviceName         = "auto-notion"
)

// ServerOptions configures the HTTP server around the router.
type ServerOptions struct {
	Port        int
	Debug       bool
	Version     string
	CORSOrigins []string
	// HealthChecks are dependency pings reported by /health.
	HealthChecks map[string]func(ctx context.Context) error
}

// Router holds the API dependencies
type Router struct {
	svc     *planner.Service
	metrics http.Handler
	clock   func() time.Time
}

// NewRouter creates a new API router. metrics may be nil.
func NewRouter(svc *planner.Service, metrics http.Handler) *Router {
	return &Router{
		svc:     svc,
		metrics: metrics,
		clock:   time.Now,
	}
}

// NewServer creates a new HTTP server using the infrastructure gin package.
func (r *Router) NewServer(log logger.Logger, opts ServerOptions) *infragin.Server {
	builder := infragin.NewServerBuilder(serviceName, opts.Port).
		WithLogger(log).
		WithDebug(opts.Debug).
		WithVersion(opts.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithCORS(infragin.CORSConfig{
			Enabled:        true,
			AllowedOrigins: opts.CORSOrigins,
		}).
		WithRoutes(r.SetupRoutes)

	for name, ping := range opts.HealthChecks {
		builder = builder.WithHealthCheck(name, infragin.PingHealthChecker(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return ping(ctx)
		}))
	}

	return builder.Build()
}

// SetupRoutes registers the service routes. Health routes are handled by the
// infrastructure gin package.
func (r *Router) SetupRoutes(router *gin.Engine) {
	if r.metrics != nil {
		router.GET("/metrics", gin.WrapH(r.metrics))
	}

	v1 := router.Group("/api/v1")

	strategies := v1.Group("/strategies")
	strategies.GET("", r.listStrategies)
	strategies.GET("/:name", r.getStrategy)

	plans := v1.Group("/plans")
	plans.POST("", r.createPlan)
	plans.GET("/:page", r.listPlanItems)
	plans.GET("/:page/export", r.exportPlanItems)

	v1.PATCH("/content/:id/status", r.updateStatus)

	audit := v1.Group("/audit")
	audit.POST("", r.auditText)
	audit.POST("/report", r.auditReport)

	timingGroup := v1.Group("/timing")
	timingGroup.GET("", r.getTiming)
	timingGroup.GET("/windows", r.getWindows)
}
