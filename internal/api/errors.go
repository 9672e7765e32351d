package api

import (
	"errors"
	"net/http"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinels to HTTP statuses. Unknown errors
// are logged and reported as 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotReady})
	case errors.Is(err, service.ErrInvalidPath):
		c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: constants.ErrInvalidPath})
	case errors.Is(err, service.ErrNoSavedRun):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoSavedRun})
	case errors.Is(err, service.ErrUnknownClass):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownClass})
	case errors.Is(err, service.ErrUnknownDifficulty):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownDifficulty})
	case errors.Is(err, service.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrOfferNotFound})
	case errors.Is(err, service.ErrInsufficientGold):
		c.JSON(http.StatusPaymentRequired, gin.H{constants.JSONKeyError: constants.ErrInsufficientGold})
	case errors.Is(err, service.ErrAbilityUnavailable):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAbilityUnavailable})
	default:
		logging.Error("unexpected service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveTurn})
	}
}
