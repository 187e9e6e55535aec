package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"timecard-backend/config"
	"timecard-backend/internal/api"
	"timecard-backend/internal/ledger"
	"timecard-backend/internal/model"
	"timecard-backend/internal/mw"
	"timecard-backend/internal/profile"
	"timecard-backend/internal/stats"
	"timecard-backend/internal/store"
)

// TestAttendanceLifecycle walks one user through a full day: configuring
// work settings, clocking in, checking the open record, clocking out and
// reading the settled values back through the stats endpoint.
func TestAttendanceLifecycle(t *testing.T) {
	const (
		dayMs  = int64(86_400_000)
		hourMs = int64(3_600_000)
		secret = "integration-secret"
	)

	// 1. In-memory SQLite database.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.User{}, &model.ClockRecord{}))

	user := model.User{Username: "worker"}
	require.NoError(t, testDB.Create(&user).Error)

	// 2. Wire the real components; "today" is pinned for determinism.
	clockIn := 19_600*dayMs + 9*hourMs
	now := time.UnixMilli(clockIn + 10*hourMs).UTC()

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = secret

	appStore := store.NewGormStore(testDB)
	l := ledger.New(appStore, ledger.WithClock(func() time.Time { return now }))
	router := api.NewRouter(cfg, l, stats.NewProjector(appStore), profile.NewService(appStore))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, mw.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequest(method, path, &buf)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// 3. Configure work settings: 09:00-17:00 at 800/day.
	w := do(http.MethodPost, "/api/users/settings", map[string]any{
		"ratedDailySalary":   800,
		"ratedWorkStartTime": "09:00",
		"ratedWorkEndTime":   "17:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var settings struct {
		RatedWorkHours  decimal.Decimal `json:"ratedWorkHours"`
		RatedHourlyRate decimal.Decimal `json:"ratedHourlyRate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "8.00", settings.RatedWorkHours.StringFixed(2))
	assert.Equal(t, "100.0000", settings.RatedHourlyRate.StringFixed(4))

	// 4. No record yet: today is an explicit null.
	w = do(http.MethodGet, "/api/clock/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var today struct {
		Record *struct {
			ClockOutTime    *int64           `json:"clockOutTime"`
			ActualWorkHours *decimal.Decimal `json:"actualWorkHours"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &today))
	assert.Nil(t, today.Record)

	// 5. Clock in with the configured snapshot.
	w = do(http.MethodPost, "/api/clock/clock-in", map[string]any{
		"clockInTime":        clockIn,
		"ratedWorkStartTime": "09:00",
		"ratedWorkEndTime":   "17:00",
		"ratedWorkHours":     settings.RatedWorkHours,
		"ratedDailySalary":   800,
		"ratedHourlyRate":    settings.RatedHourlyRate,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 6. Today now shows the open record.
	w = do(http.MethodGet, "/api/clock/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &today))
	require.NotNil(t, today.Record)
	assert.Nil(t, today.Record.ClockOutTime)
	assert.Nil(t, today.Record.ActualWorkHours)

	// 7. Clock out after ten hours.
	w = do(http.MethodPost, "/api/clock/clock-out", map[string]any{
		"clockOutTime": clockIn + 10*hourMs,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		ActualWorkHours     decimal.Decimal `json:"actualWorkHours"`
		ExpectedDailySalary decimal.Decimal `json:"expectedDailySalary"`
		ActualHourlyRate    decimal.Decimal `json:"actualHourlyRate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "10.00", out.ActualWorkHours.StringFixed(2))
	assert.Equal(t, "1000.00", out.ExpectedDailySalary.StringFixed(2))
	assert.Equal(t, "80.00", out.ActualHourlyRate.StringFixed(2))

	// 8. The settled day shows up in the heatmap series.
	w = do(http.MethodGet, "/api/stats/heatmap?startDate=2023-08-30&endDate=2023-09-01&type=workHours", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var series struct {
		Data []struct {
			Date  string          `json:"date"`
			Value decimal.Decimal `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
	require.Len(t, series.Data, 1)
	assert.Equal(t, "10.00", series.Data[0].Value.StringFixed(2))
}
