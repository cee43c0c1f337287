package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moonveil/tarot-backend/internal/draw"
	"github.com/moonveil/tarot-backend/internal/models"
)

// verifyRequest carries the publicly revealed fields of a past draw.
type verifyRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	Timestamp  int64  `json:"timestamp" binding:"required"`
	ServerSeed string `json:"serverSeed" binding:"required"` // base64
	CommitHash string `json:"commitHash" binding:"required"`
	Spread     string `json:"spread" binding:"required"`
	Positions  []int  `json:"positions" binding:"required"`
}

// Verify handles POST /api/v1/verify. It is side-effect free: anyone can
// replay a revealed draw and compare the reproduced cards.
func (a *API) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	seed, err := base64.StdEncoding.DecodeString(req.ServerSeed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serverSeed must be base64"})
		return
	}

	cards, err := draw.Verify(req.SessionID, req.Timestamp, seed, req.CommitHash,
		models.Spread(req.Spread), req.Positions)
	if err != nil {
		switch {
		case errors.Is(err, draw.ErrCommitmentMismatch):
			c.JSON(http.StatusOK, gin.H{"valid": false})
		case errors.Is(err, draw.ErrInvalidSelection), errors.Is(err, draw.ErrInvalidSpread):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":       true,
		"cards":       cards,
		"algorithmId": draw.AlgorithmID,
	})
}
