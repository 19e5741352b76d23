package api

import (
	"net/http"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/world"
	"github.com/gin-gonic/gin"
)

type StartRunRequest struct {
	Character string `json:"character"`
}

type MoveRequest struct {
	Direction string `json:"direction"`
}

// StartRun begins a new run with the chosen character. An empty body
// picks the default character.
func (h *GameHandler) StartRun(c *gin.Context) {
	var req StartRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	v, err := h.svc.StartRun(identityFrom(c), req.Character)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetRun returns the current run.
func (h *GameHandler) GetRun(c *gin.Context) {
	v, err := h.svc.GetRun(identityFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Move steps the player one cell on the map.
func (h *GameHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	dir, err := world.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidDirection})
		return
	}
	v, err := h.svc.Move(identityFrom(c), dir)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SaveAndExit records the run and ends it.
func (h *GameHandler) SaveAndExit(c *gin.Context) {
	stats, err := h.svc.SaveAndExit(identityFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Run saved", "stats": stats})
}

// AcknowledgeDefeat closes a defeated run so a new one can start.
func (h *GameHandler) AcknowledgeDefeat(c *gin.Context) {
	if err := h.svc.AcknowledgeDefeat(identityFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Defeat acknowledged"})
}
