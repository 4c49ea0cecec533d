package services

import (
	"QuickTrip/models"
	"QuickTrip/utils"
	"context"
	"log"
	"sort"
	"sync"
)

const (
	// maxRouteLookups bounds how many candidates get a live routing call
	// per search; everything past it gets the speed estimate only
	maxRouteLookups = 20

	// maxSearchResults caps the final response size
	maxSearchResults = 50
)

// SearchService coordinates one search: radius from the time budget, the
// spatial index lookup, per-candidate travel-time enrichment, filtering,
// ranking and truncation. Provider failures are absorbed here, never
// surfaced to the caller.
type SearchService struct {
	OverpassService *OverpassService
	RoutingService  *RoutingService
}

func NewSearchService() *SearchService {
	return &SearchService{
		OverpassService: NewOverpassService(),
		RoutingService:  NewRoutingService(),
	}
}

// Search always returns a best-effort response: live places when the index
// answers, the fixture set when it does not.
func (s *SearchService) Search(ctx context.Context, req models.SearchRequest) *models.SearchResponse {
	radius := utils.RadiusForBudget(req.TimeMinutes, req.Transport)
	log.Printf("Searching places within %d m (%d min by %s, routing key present: %t)",
		radius, req.TimeMinutes, req.Transport, s.RoutingService.APIKey != "")

	response := &models.SearchResponse{
		Center: models.Center{Latitude: req.Latitude, Longitude: req.Longitude},
		Radius: radius,
	}

	places, err := s.OverpassService.SearchPlaces(ctx, req.Latitude, req.Longitude, radius, req.Categories)
	if err != nil {
		log.Printf("Place index unavailable, serving fixture places: %v", err)
		response.Places = fallbackPlaces(req)
		return response
	}
	log.Printf("Place index returned %d candidates", len(places))

	s.annotateTravelTimes(ctx, req, places)

	places = filterPlaces(req, places)
	sortPlaces(places)
	if len(places) > maxSearchResults {
		places = places[:maxSearchResults]
	}

	response.Places = places
	return response
}

// annotateTravelTimes fills in travel times for every candidate. The first
// maxRouteLookups candidates (already distance-ascending) get a concurrent
// live lookup, each goroutine owning only its own slot; the rest get the
// straight-line estimate without ever touching the provider. The WaitGroup
// join is the barrier: a slow or failed lookup degrades that one candidate,
// never the batch.
func (s *SearchService) annotateTravelTimes(ctx context.Context, req models.SearchRequest, places []models.Place) {
	live := len(places)
	if live > maxRouteLookups {
		live = maxRouteLookups
	}

	var wg sync.WaitGroup
	for i := 0; i < live; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			places[i].TravelTime = s.RoutingService.TravelTime(ctx,
				req.Latitude, req.Longitude,
				places[i].Latitude, places[i].Longitude,
				req.Transport)
		}(i)
	}

	for i := live; i < len(places); i++ {
		places[i].TravelTime = utils.EstimateTravelMinutes(float64(places[i].Distance), req.Transport)
	}

	wg.Wait()
}

// filterPlaces applies the hard time cutoff first, then the optional
// price/open-now/facility filters
func filterPlaces(req models.SearchRequest, places []models.Place) []models.Place {
	filtered := make([]models.Place, 0, len(places))
	for _, place := range places {
		if place.TravelTime > req.TimeMinutes {
			continue
		}
		if req.PriceRange != "" && place.PriceRange != req.PriceRange {
			continue
		}
		if req.OpenNow && !place.IsOpen {
			continue
		}
		if len(req.Facilities) > 0 && !place.HasAnyFacility(req.Facilities) {
			continue
		}
		filtered = append(filtered, place)
	}
	return filtered
}

// sortPlaces ranks by travel time, the signal the user budgeted against,
// with distance as the tie break
func sortPlaces(places []models.Place) {
	sort.Slice(places, func(i, j int) bool {
		if places[i].TravelTime != places[j].TravelTime {
			return places[i].TravelTime < places[j].TravelTime
		}
		return places[i].Distance < places[j].Distance
	})
}
