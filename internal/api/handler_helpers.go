package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opendev-labs/auto-notion/internal/domain"
	infralogger "github.com/opendev-labs/auto-notion/internal/infrastructure/logger"
	"github.com/opendev-labs/auto-notion/internal/planner"
)

// handleServiceError maps domain errors to HTTP responses
func handleServiceError(c *gin.Context, err error, entityType, operation string) {
	switch {
	case errors.Is(err, domain.ErrInvalidDays),
		errors.Is(err, domain.ErrInvalidStrategy),
		errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entityType + " not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": entityType + " already exists"})
	case errors.Is(err, planner.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		infralogger.FromContext(c.Request.Context()).Error("request failed",
			infralogger.String("entity", entityType),
			infralogger.String("operation", operation),
			infralogger.String("path", c.FullPath()),
			infralogger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation + " " + entityType})
	}
}

// queryInt parses an optional integer query parameter. It writes a 400 and
// returns false when the value is malformed.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}

// queryDate reads an optional YYYY-MM-DD query parameter, defaulting to
// def. It writes a 400 and returns false when the value is malformed.
func queryDate(c *gin.Context, name, def string) (string, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter, expected YYYY-MM-DD"})
		return "", false
	}
	return raw, true
}
