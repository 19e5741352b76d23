package api

import (
	"net/http"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/logging"
	"github.com/gin-gonic/gin"
)

// ListCharacters returns the playable classes.
func (h *GameHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"characters": h.svc.Characters()})
}

// ListLeaderboard returns the best high scores, best first. Emails of
// other players are stripped.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	scores, err := h.svc.Leaderboard(queryLimit(c))
	if err != nil {
		logging.Error("leaderboard query failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, scores)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListHistory returns the signed-in player's recent runs.
func (h *GameHandler) ListHistory(c *gin.Context) {
	records, err := h.svc.History(c.GetString(constants.CtxUserEmail), queryLimit(c))
	if err != nil {
		logging.Error("history query failed", err, logging.Fields{constants.LogFieldEmail: c.GetString(constants.CtxUserEmail)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	c.JSON(http.StatusOK, out)
}
