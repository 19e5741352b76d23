package api

import (
	"net/http"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/game"

	"github.com/gin-gonic/gin"
)

type UpgradeRequest struct {
	Stat string `json:"stat"`
}

// GetShop returns the upgrade cost and the current stats.
func (h *GameHandler) GetShop(c *gin.Context) {
	v, err := h.svc.Shop(identityFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Upgrade buys one point of a stat.
func (h *GameHandler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.svc.Upgrade(identityFrom(c), game.Stat(req.Stat))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
