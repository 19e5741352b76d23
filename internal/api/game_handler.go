package api

import (
	"github.com/ericogr/giera/internal/service"
)

// GameHandler groups all run-related HTTP handlers.
type GameHandler struct {
	svc *service.Game
}

// NewGameHandler creates a GameHandler backed by the game service.
func NewGameHandler(svc *service.Game) *GameHandler {
	return &GameHandler{svc: svc}
}
