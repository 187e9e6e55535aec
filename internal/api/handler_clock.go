package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"timecard-backend/internal/ledger"
	"timecard-backend/internal/model"
	"timecard-backend/internal/mw"
	"timecard-backend/internal/wage"
)

type clockInRequest struct {
	ClockInTime        int64           `json:"clockInTime" binding:"required"`
	RatedWorkStartTime string          `json:"ratedWorkStartTime" binding:"required"`
	RatedWorkEndTime   string          `json:"ratedWorkEndTime" binding:"required"`
	RatedWorkHours     decimal.Decimal `json:"ratedWorkHours"`
	RatedDailySalary   decimal.Decimal `json:"ratedDailySalary"`
	RatedHourlyRate    decimal.Decimal `json:"ratedHourlyRate"`
}

type clockInResponse struct {
	Date               string          `json:"date"`
	ClockInTime        int64           `json:"clockInTime"`
	RatedWorkStartTime string          `json:"ratedWorkStartTime"`
	RatedWorkEndTime   string          `json:"ratedWorkEndTime"`
	RatedHourlyRate    decimal.Decimal `json:"ratedHourlyRate"`
	RatedWorkHours     decimal.Decimal `json:"ratedWorkHours"`
	RatedDailySalary   decimal.Decimal `json:"ratedDailySalary"`
}

// ClockIn handles POST /api/clock/clock-in.
func (h *Handler) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.ledger.ClockIn(c.Request.Context(), mw.UserID(c), ledger.ClockInInput{
		ClockInTime:        req.ClockInTime,
		RatedWorkStartTime: req.RatedWorkStartTime,
		RatedWorkEndTime:   req.RatedWorkEndTime,
		RatedWorkHours:     req.RatedWorkHours,
		RatedDailySalary:   req.RatedDailySalary,
		RatedHourlyRate:    req.RatedHourlyRate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, clockInResponse{
		Date:               wage.DayLabel(res.Day),
		ClockInTime:        res.ClockInTime,
		RatedWorkStartTime: res.RatedWorkStartTime,
		RatedWorkEndTime:   res.RatedWorkEndTime,
		RatedHourlyRate:    res.RatedHourlyRate,
		RatedWorkHours:     res.RatedWorkHours,
		RatedDailySalary:   res.RatedDailySalary,
	})
}

type clockOutRequest struct {
	ClockOutTime int64 `json:"clockOutTime" binding:"required"`
}

type clockOutResponse struct {
	ClockOutTime        int64           `json:"clockOutTime"`
	ActualWorkHours     decimal.Decimal `json:"actualWorkHours"`
	ExpectedDailySalary decimal.Decimal `json:"expectedDailySalary"`
	ActualHourlyRate    decimal.Decimal `json:"actualHourlyRate"`
}

// ClockOut handles POST /api/clock/clock-out.
func (h *Handler) ClockOut(c *gin.Context) {
	var req clockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.ledger.ClockOut(c.Request.Context(), mw.UserID(c), req.ClockOutTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, clockOutResponse{
		ClockOutTime:        res.ClockOutTime,
		ActualWorkHours:     res.ActualWorkHours,
		ExpectedDailySalary: res.ExpectedDailySalary,
		ActualHourlyRate:    res.ActualHourlyRate,
	})
}

type todayRecordResponse struct {
	Date                string           `json:"date"`
	ClockInTime         int64            `json:"clockInTime"`
	ClockOutTime        *int64           `json:"clockOutTime"`
	RatedWorkStartTime  string           `json:"ratedWorkStartTime"`
	RatedWorkEndTime    string           `json:"ratedWorkEndTime"`
	RatedHourlyRate     decimal.Decimal  `json:"ratedHourlyRate"`
	ActualHourlyRate    *decimal.Decimal `json:"actualHourlyRate"`
	RatedWorkHours      decimal.Decimal  `json:"ratedWorkHours"`
	ActualWorkHours     *decimal.Decimal `json:"actualWorkHours"`
	ExpectedDailySalary *decimal.Decimal `json:"expectedDailySalary"`
	RatedDailySalary    decimal.Decimal  `json:"ratedDailySalary"`
}

// TodayRecord handles GET /api/clock/today. An absent record is a normal
// outcome: the response carries an explicit null.
func (h *Handler) TodayRecord(c *gin.Context) {
	rec, err := h.ledger.TodayRecord(c.Request.Context(), mw.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"record": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": todayRecord(rec)})
}

func todayRecord(rec *model.ClockRecord) todayRecordResponse {
	return todayRecordResponse{
		Date:                wage.DayLabel(rec.Day),
		ClockInTime:         rec.ClockInTime,
		ClockOutTime:        rec.ClockOutTime,
		RatedWorkStartTime:  rec.RatedWorkStartTime,
		RatedWorkEndTime:    rec.RatedWorkEndTime,
		RatedHourlyRate:     rec.RatedHourlyRate,
		ActualHourlyRate:    nullable(rec.ActualHourlyRate),
		RatedWorkHours:      rec.RatedWorkHours,
		ActualWorkHours:     nullable(rec.ActualWorkHours),
		ExpectedDailySalary: nullable(rec.ExpectedDailySalary),
		RatedDailySalary:    rec.RatedDailySalary,
	}
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
