package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getTiming reports the lunar phase and posting recommendation
// GET /api/v1/timing
func (r *Router) getTiming(c *gin.Context) {
	c.JSON(http.StatusOK, r.svc.Timing())
}

// getWindows lists upcoming posting windows
// GET /api/v1/timing/windows?days=N
func (r *Router) getWindows(c *gin.Context) {
	days, ok := queryInt(c, "days", defaultWindowDays)
	if !ok {
		return
	}

	windows, err := r.svc.Windows(days)
	if err != nil {
		handleServiceError(c, err, "windows", "compute")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"windows": windows,
		"count":   len(windows),
	})
}
