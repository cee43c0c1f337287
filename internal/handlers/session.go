package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moonveil/tarot-backend/internal/models"
)

// sessionRequest is the JSON payload for creating a session.
type sessionRequest struct {
	Spread string `json:"spread"`
}

// CreateSession handles POST /api/v1/sessions. It mints the commitment and
// returns only the public fields; the seed stays server-side until reveal.
func (a *API) CreateSession(c *gin.Context) {
	// An empty body is allowed and defaults to a single-card spread.
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	spread := models.Spread(req.Spread)
	if req.Spread == "" {
		spread = models.SpreadSingle
	}
	if !spread.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown spread kind"})
		return
	}

	s, err := a.orch.CreateSession(spread)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	noStore(c)
	c.JSON(http.StatusOK, gin.H{
		"sessionId":  s.ID,
		"commitHash": s.CommitHash,
		"timestamp":  s.CreatedAt,
		"spread":     s.Spread,
	})
}
