package route

import (
	"QuickTrip/controllers"
	"QuickTrip/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine) {
	placeController := controllers.NewPlaceController()

	v1Routes := router.Group("/v1")
	{
		handlers.RegisterPlaceRoutes(v1Routes, placeController)
	}
}
