package api

import (
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/service"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	session *service.Session
	cfg     *game.GameConfig
}

// NewGameHandler creates a GameHandler driving session with the loaded
// content cfg.
func NewGameHandler(session *service.Session, cfg *game.GameConfig) *GameHandler {
	return &GameHandler{session: session, cfg: cfg}
}
