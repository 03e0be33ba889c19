package api

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/export"
	"github.com/opendev-labs/auto-notion/internal/planner"
)

const dateLayout = "2006-01-02"

type createPlanRequest struct {
	PageName string  `json:"page_name"`
	Days     *int    `json:"days"`
	Seed     *uint64 `json:"seed"`
	Align    bool    `json:"align"`
	Save     bool    `json:"save"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// listStrategies lists page names
// GET /api/v1/strategies
func (r *Router) listStrategies(c *gin.Context) {
	names := r.svc.Strategies()
	c.JSON(http.StatusOK, gin.H{
		"strategies": names,
		"count":      len(names),
	})
}

// getStrategy resolves a page strategy, falling back to the default
// GET /api/v1/strategies/:name
func (r *Router) getStrategy(c *gin.Context) {
	strat, found := r.svc.Strategy(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{
		"strategy": strat,
		"fallback": !found,
	})
}

// createPlan generates a content plan
// POST /api/v1/plans
func (r *Router) createPlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	days := defaultPlanDays
	if req.Days != nil {
		days = *req.Days
	}

	plan, err := r.svc.Plan(c.Request.Context(), planner.PlanRequest{
		Page:  req.PageName,
		Days:  days,
		Seed:  req.Seed,
		Align: req.Align,
		Save:  req.Save,
	})
	if err != nil {
		handleServiceError(c, err, "plan", "generate")
		return
	}

	status := http.StatusOK
	if plan.Saved {
		status = http.StatusCreated
	}
	c.JSON(status, plan)
}

// listPlanItems lists stored items for a page
// GET /api/v1/plans/:page?from=YYYY-MM-DD&limit=N
func (r *Router) listPlanItems(c *gin.Context) {
	from, ok := queryDate(c, "from", r.clock().UTC().Format(dateLayout))
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	items, err := r.svc.Items(c.Request.Context(), c.Param("page"), from, limit)
	if err != nil {
		handleServiceError(c, err, "content item", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// exportPlanItems downloads stored items for a page as an XLSX calendar
// GET /api/v1/plans/:page/export?from=YYYY-MM-DD&limit=N
func (r *Router) exportPlanItems(c *gin.Context) {
	page := c.Param("page")
	from, ok := queryDate(c, "from", r.clock().UTC().Format(dateLayout))
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	items, err := r.svc.Items(c.Request.Context(), page, from, limit)
	if err != nil {
		handleServiceError(c, err, "content item", "export")
		return
	}

	var buf bytes.Buffer
	if writeErr := export.WriteCalendar(&buf, items); writeErr != nil {
		handleServiceError(c, writeErr, "calendar", "export")
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": page + "-calendar.xlsx"})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// updateStatus moves a content item through review
// PATCH /api/v1/content/:id/status
func (r *Router) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + req.Status})
		return
	}

	item, err := r.svc.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		handleServiceError(c, err, "content item", "update")
		return
	}

	c.JSON(http.StatusOK, item)
}
