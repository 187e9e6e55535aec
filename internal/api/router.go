package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"timecard-backend/config"
	"timecard-backend/internal/ledger"
	"timecard-backend/internal/mw"
	"timecard-backend/internal/profile"
	"timecard-backend/internal/stats"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, l *ledger.Ledger, p *stats.Projector, ps *profile.Service) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(l, p, ps)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Server.RequestIPHeader)
	auth := mw.Auth(cfg.Auth.JWTSecret)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, auth)
	{
		// POST /api/clock/clock-in, /api/clock/clock-out, GET /api/clock/today
		clock := api.Group("/clock")
		clock.POST("/clock-in", handler.ClockIn)
		clock.POST("/clock-out", handler.ClockOut)
		clock.GET("/today", handler.TodayRecord)

		// GET /api/stats/heatmap — per-user cached, history changes slowly
		api.GET("/stats/heatmap", caching, handler.Heatmap)

		// POST /api/users/settings
		api.POST("/users/settings", handler.SetWorkSettings)
	}

	return r
}
