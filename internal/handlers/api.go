// Package handlers exposes the engine over HTTP. Handlers stay thin: bind,
// call the orchestrator, map typed errors to status codes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moonveil/tarot-backend/internal/config"
	"github.com/moonveil/tarot-backend/internal/draw"
)

// API bundles the handlers with their dependencies.
type API struct {
	cfg  *config.AppConfig
	orch *draw.Orchestrator
}

// New returns an API bound to the given config and orchestrator.
func New(cfg *config.AppConfig, orch *draw.Orchestrator) *API {
	return &API{cfg: cfg, orch: orch}
}

// Routes mounts all endpoints under /api/v1.
func (a *API) Routes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", a.Health)
		api.POST("/sessions", a.CreateSession)
		api.POST("/draws", a.Draw)
		api.POST("/verify", a.Verify)

		admin := api.Group("/admin")
		{
			admin.POST("/login", a.Login)
			admin.GET("/stats", a.RequireAuth(), a.Stats)
		}
	}
}

// Health handles GET /api/v1/health.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// noStore marks a response as uncacheable. Session and draw payloads carry
// commitment material and must never be served stale.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
}
