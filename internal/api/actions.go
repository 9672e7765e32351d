package api

import (
	"net/http"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"github.com/gin-gonic/gin"
)

type PathRequest struct {
	Path []game.Position `json:"path" binding:"required"`
}

// Preview projects a path without committing it.
func (h *GameHandler) Preview(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	preview, err := h.session.Preview(req.Path)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": preview})
}

// CommitPath resolves one turn. The response is sent once the turn,
// including the presentation delay, has completed.
func (h *GameHandler) CommitPath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.session.CommitPath(c.Request.Context(), req.Path)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ActivateAbility uses one of the player's abilities.
func (h *GameHandler) ActivateAbility(c *gin.Context) {
	snap, err := h.session.ActivateAbility(c.Request.Context(), c.Param(constants.RouteParamAbilityID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PurchaseOffer buys a level-up offer.
func (h *GameHandler) PurchaseOffer(c *gin.Context) {
	snap, err := h.session.PurchaseOffer(c.Request.Context(), c.Param(constants.RouteParamOfferID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SkipOffers declines the level-up offers.
func (h *GameHandler) SkipOffers(c *gin.Context) {
	snap, err := h.session.SkipOffers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
