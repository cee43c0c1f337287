package main

import (
	"github.com/gin-gonic/gin"

	"github.com/moonveil/tarot-backend/internal/config"
	"github.com/moonveil/tarot-backend/internal/draw"
	"github.com/moonveil/tarot-backend/internal/handlers"
	"github.com/moonveil/tarot-backend/internal/models"
	"github.com/moonveil/tarot-backend/internal/session"
)

func main() {
	cfg := config.Load()

	// Pick the session store: postgres when configured, in-memory otherwise.
	var store session.Store
	if cfg.UseDatabase() {
		db := config.InitDB(cfg)
		if err := models.Migrate(db); err != nil {
			panic("failed to migrate database: " + err.Error())
		}
		store = session.NewGormStore(db, cfg.SessionTTL)
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
	}

	orch := draw.NewOrchestrator(store)

	r := gin.Default()
	r.Use(config.CORSMiddleware(cfg))
	handlers.New(cfg, orch).Routes(r)

	r.Run(":" + cfg.Port)
}
