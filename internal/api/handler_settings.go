package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"timecard-backend/internal/mw"
)

type workSettingsRequest struct {
	RatedDailySalary   decimal.Decimal `json:"ratedDailySalary"`
	RatedWorkStartTime string          `json:"ratedWorkStartTime" binding:"required"`
	RatedWorkEndTime   string          `json:"ratedWorkEndTime" binding:"required"`
}

type workSettingsResponse struct {
	RatedDailySalary   decimal.Decimal `json:"ratedDailySalary"`
	RatedWorkStartTime string          `json:"ratedWorkStartTime"`
	RatedWorkEndTime   string          `json:"ratedWorkEndTime"`
	RatedWorkHours     decimal.Decimal `json:"ratedWorkHours"`
	RatedHourlyRate    decimal.Decimal `json:"ratedHourlyRate"`
}

// SetWorkSettings handles POST /api/users/settings: it recomputes and
// persists the rated hours and hourly rate from the submitted window.
func (h *Handler) SetWorkSettings(c *gin.Context) {
	var req workSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profiles.SetWorkSettings(c.Request.Context(), mw.UserID(c),
		req.RatedDailySalary, req.RatedWorkStartTime, req.RatedWorkEndTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, workSettingsResponse{
		RatedDailySalary:   user.RatedDailySalary.Decimal,
		RatedWorkStartTime: user.RatedWorkStartTime,
		RatedWorkEndTime:   user.RatedWorkEndTime,
		RatedWorkHours:     user.RatedWorkHours.Decimal,
		RatedHourlyRate:    user.RatedHourlyRate.Decimal,
	})
}
