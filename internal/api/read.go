package api

import (
	"net/http"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"

	"github.com/gin-gonic/gin"
)

// Health reports that the server is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// Content returns the validated content set.
func (h *GameHandler) Content(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg)
}

// State returns the current session snapshot.
func (h *GameHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// History returns finished runs, newest first.
func (h *GameHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.History(c.Request.Context()))
}

// Progression returns account progression with class levels.
func (h *GameHandler) Progression(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Progression())
}
