package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timecard-backend/internal/mw"
	"timecard-backend/internal/stats"
)

// Heatmap handles GET /api/stats/heatmap?startDate=...&endDate=...&type=...
// and returns the sparse per-day series for one dimension.
func (h *Handler) Heatmap(c *gin.Context) {
	startParam := c.Query("startDate")
	endParam := c.Query("endDate")
	dim := stats.Dimension(c.Query("type"))

	if startParam == "" || endParam == "" || dim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate, endDate and type are required"})
		return
	}
	if !dim.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be hourlyRate or workHours"})
		return
	}

	start, err := time.ParseInLocation(time.DateOnly, startParam, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, use YYYY-MM-DD"})
		return
	}
	end, err := time.ParseInLocation(time.DateOnly, endParam, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, use YYYY-MM-DD"})
		return
	}

	points, err := h.stats.Series(c.Request.Context(), mw.UserID(c), start, end, dim)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": points})
}
