package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moonveil/tarot-backend/internal/draw"
)

// drawRequest is the JSON payload for executing a draw.
type drawRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Positions []int  `json:"positions" binding:"required"`
}

// Draw handles POST /api/v1/draws. A successful response reveals the seed
// and consumes the session; the verification block echoes what a third
// party needs to replay the result.
func (a *API) Draw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	result, err := a.orch.Draw(req.SessionID, req.Positions)
	if err != nil {
		switch {
		case errors.Is(err, draw.ErrInvalidSelection):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, draw.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found, expired, or already drawn"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Draw failed"})
		}
		return
	}

	noStore(c)
	c.JSON(http.StatusOK, gin.H{
		"cards":        result.Cards,
		"revealedSeed": result.RevealedSeed,
		"commitHash":   result.CommitHash,
		"timestamp":    result.Timestamp,
		"algorithmId":  result.AlgorithmID,
		"verification": gin.H{
			"sessionId": req.SessionID,
			"positions": req.Positions,
		},
	})
}
