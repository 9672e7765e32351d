package api

import (
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"

	"github.com/gin-gonic/gin"
)

// NewRouter registers every route under the API prefix.
func NewRouter(h *GameHandler, hub *Hub) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, Health)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteContent, h.Content)
		apiRoutes.GET(constants.RouteState, h.State)
		apiRoutes.GET(constants.RouteHistory, h.History)
		apiRoutes.GET(constants.RouteProgression, h.Progression)

		apiRoutes.POST(constants.RouteNewGame, h.NewGame)
		apiRoutes.POST(constants.RouteContinue, h.Continue)
		apiRoutes.POST(constants.RouteSelectClass, h.SelectClass)
		apiRoutes.POST(constants.RoutePreview, h.Preview)
		apiRoutes.POST(constants.RouteCommitPath, h.CommitPath)
		apiRoutes.POST(constants.RouteAbility, h.ActivateAbility)
		apiRoutes.POST(constants.RouteOfferPurchase, h.PurchaseOffer)
		apiRoutes.POST(constants.RouteOfferSkip, h.SkipOffers)

		apiRoutes.GET(constants.RouteStream, hub.Stream)
	}
	return router
}
