package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	name    string
	version string
	db      Pinger
}

func NewHealthController(name, version string, db Pinger) *HealthController {
	return &HealthController{name: name, version: version, db: db}
}

// Health provides an unauthenticated liveness endpoint for container orchestrators.
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, database, code := "ok", "up", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		status, database, code = "degraded", "down", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"name":      h.name,
		"version":   h.version,
		"timestamp": time.Now().UTC(),
	})
}

// Welcome answers the root path.
func (h *HealthController) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the " + h.name})
}
