package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type auditRequest struct {
	Text string `json:"text"`
}

type reportRequest struct {
	Texts []string `json:"texts"`
}

// auditText scores one text
// POST /api/v1/audit
func (r *Router) auditText(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, suggestions := r.svc.Audit(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"result":      result,
		"suggestions": suggestions,
	})
}

// auditReport scores a batch of texts
// POST /api/v1/audit/report
func (r *Router) auditReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := r.svc.Report(req.Texts)
	if err != nil {
		handleServiceError(c, err, "report", "generate")
		return
	}

	c.JSON(http.StatusOK, report)
}
