package api

import (
	"net/http"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"

	"github.com/gin-gonic/gin"
)

type SelectClassRequest struct {
	ClassID    string `json:"class_id" binding:"required"`
	Difficulty string `json:"difficulty"`
}

// NewGame discards any saved run and opens class selection.
func (h *GameHandler) NewGame(c *gin.Context) {
	snap, err := h.session.NewGame(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Continue restores the saved run.
func (h *GameHandler) Continue(c *gin.Context) {
	snap, err := h.session.Continue(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectClass starts a run with the chosen class and optional difficulty.
func (h *GameHandler) SelectClass(c *gin.Context) {
	var req SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.session.SelectClass(c.Request.Context(), req.ClassID, req.Difficulty)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
