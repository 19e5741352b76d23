package api

import (
	"net/http"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/engine"

	"github.com/gin-gonic/gin"
)

type ActionRequest struct {
	Action string `json:"action"`
}

// GetEncounter returns the active encounter with the damage labels for
// each action.
func (h *GameHandler) GetEncounter(c *gin.Context) {
	v, err := h.svc.Encounter(identityFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SubmitAction resolves one player action and the monster's reply.
func (h *GameHandler) SubmitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.Act(identityFrom(c), engine.ActionKind(req.Action))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Flee leaves the encounter without reward.
func (h *GameHandler) Flee(c *gin.Context) {
	v, err := h.svc.Flee(identityFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
