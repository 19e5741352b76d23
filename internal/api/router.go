package api

import (
	"github.com/ericogr/giera/internal/constants"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every HTTP route. Run routes work for guests and
// signed-in players alike; history needs a signed-in player.
func NewRouter(handler *GameHandler, authHandler *AuthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCharacters, handler.ListCharacters)

		identified := apiRoutes.Group("")
		identified.Use(Identity())
		identified.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		identified.POST(constants.RouteRun, handler.StartRun)
		identified.GET(constants.RouteRun, handler.GetRun)
		identified.POST(constants.RouteRunMove, handler.Move)
		identified.GET(constants.RouteEncounter, handler.GetEncounter)
		identified.POST(constants.RouteEncounterAction, handler.SubmitAction)
		identified.POST(constants.RouteEncounterFlee, handler.Flee)
		identified.GET(constants.RouteShop, handler.GetShop)
		identified.POST(constants.RouteShopUpgrade, handler.Upgrade)
		identified.POST(constants.RouteSaveExit, handler.SaveAndExit)
		identified.POST(constants.RouteDefeatAck, handler.AcknowledgeDefeat)

		// Authenticated endpoints
		protected := identified.Group("")
		protected.Use(AuthRequired())
		protected.GET(constants.RouteHistory, handler.ListHistory)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	return router
}
