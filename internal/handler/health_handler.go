package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
