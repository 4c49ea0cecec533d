package controllers

import (
	"QuickTrip/models"
	"QuickTrip/services"
	"QuickTrip/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlaceController struct {
	SearchService  *services.SearchService
	RoutingService *services.RoutingService
}

func NewPlaceController() *PlaceController {
	searchService := services.NewSearchService()
	return &PlaceController{
		SearchService:  searchService,
		RoutingService: searchService.RoutingService,
	}
}

// SearchPlaces runs one discovery search. Provider failures are absorbed by
// the engine, so this always answers 200 with a best-effort list.
func (p *PlaceController) SearchPlaces(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid search request: "+err.Error())
		return
	}

	response := p.SearchService.Search(c, req)

	utils.SuccessResponse(c, http.StatusOK, "Places fetched successfully", response)
}

// GetIsochrone returns the reachable boundary polygon for an origin and
// time budget
func (p *PlaceController) GetIsochrone(c *gin.Context) {
	var req models.IsochroneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid isochrone request: "+err.Error())
		return
	}

	polygon := p.RoutingService.Isochrone(c, req.Latitude, req.Longitude, req.TimeMinutes, req.Transport)

	utils.SuccessResponse(c, http.StatusOK, "Isochrone fetched successfully", models.IsochroneResponse{
		Polygon: polygon,
	})
}

// GetPlaceByID serves the fixture places by identifier
func (p *PlaceController) GetPlaceByID(c *gin.Context) {
	placeID := c.Param("id")

	place, found := services.FixturePlaceByID(placeID)
	if !found {
		utils.ErrorResponse(c, http.StatusNotFound, "Place not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Place fetched successfully", place)
}
