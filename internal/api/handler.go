package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"timecard-backend/internal/ledger"
	"timecard-backend/internal/profile"
	"timecard-backend/internal/stats"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	ledger   *ledger.Ledger
	stats    *stats.Projector
	profiles *profile.Service
}

// NewHandler creates a new API handler.
func NewHandler(l *ledger.Ledger, p *stats.Projector, ps *profile.Service) *Handler {
	return &Handler{
		ledger:   l,
		stats:    p,
		profiles: ps,
	}
}

// writeError maps business errors onto HTTP statuses. Anything outside
// the known taxonomy is a persistence/internal failure and is not leaked
// to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUserNotFound), errors.Is(err, ledger.ErrNoOpenRecord):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrAlreadyClockedIn), errors.Is(err, ledger.ErrAlreadyClockedOut):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error handling %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
