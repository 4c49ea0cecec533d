package handlers

import (
	"QuickTrip/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPlaceRoutes(router *gin.RouterGroup, placeController *controllers.PlaceController) {
	placeGroup := router.Group("/places")
	{
		placeGroup.POST("/search", placeController.SearchPlaces)

		placeGroup.POST("/isochrone", placeController.GetIsochrone)

		placeGroup.GET("/:id", placeController.GetPlaceByID)
	}
}
