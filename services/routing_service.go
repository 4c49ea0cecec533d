package services

import (
	"QuickTrip/config/environment"
	"QuickTrip/models"
	"QuickTrip/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"
)

// isochronePoints is how many vertices the circular fallback polygon gets
const isochronePoints = 16

// RoutingService resolves travel times and isochrones against
// OpenRouteService. Every call degrades to a speed-based estimate on
// failure; nothing here ever errors outward.
type RoutingService struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRoutingService() *RoutingService {
	return &RoutingService{
		APIKey:  environment.GetOpenRouteServiceKey(),
		BaseURL: environment.GetRoutingBaseURL(),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type routeResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

type isochroneResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// routeProfiles maps transport modes to OpenRouteService profiles. The
// provider has no transit profile, so transit approximates as walking.
var routeProfiles = map[models.TransportMode]string{
	models.TransportWalking: "foot-walking",
	models.TransportDriving: "driving-car",
	models.TransportCycling: "cycling-regular",
	models.TransportTransit: "foot-walking",
}

func routeProfile(mode models.TransportMode) string {
	if profile, ok := routeProfiles[mode]; ok {
		return profile
	}
	return "foot-walking"
}

// TravelTime returns the route duration in minutes between two points. When
// the provider is unreachable, rejects the request, or returns no route, the
// straight-line estimate is used instead.
func (s *RoutingService) TravelTime(ctx context.Context, fromLat, fromLng, toLat, toLng float64, mode models.TransportMode) int {
	estimate := func() int {
		distance := utils.HaversineDistance(fromLat, fromLng, toLat, toLng)
		return utils.EstimateTravelMinutes(distance, mode)
	}

	if s.APIKey == "" {
		return estimate()
	}

	payload := map[string]interface{}{
		"coordinates": [][]float64{{fromLng, fromLat}, {toLng, toLat}},
	}
	jsonData, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/directions/%s/geojson", s.BaseURL, routeProfile(mode))
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return estimate()
	}
	req.Header.Set("Authorization", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Route calculation error, falling back to estimate: %v", err)
		return estimate()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Routing API returned status %d, falling back to estimate", resp.StatusCode)
		return estimate()
	}

	var data routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Error parsing routing response, falling back to estimate: %v", err)
		return estimate()
	}

	if len(data.Routes) == 0 {
		return estimate()
	}

	return int(math.Ceil(data.Routes[0].Summary.Duration / 60))
}

// Isochrone returns the reachable boundary as [lat,lng] pairs. On any
// provider failure it synthesizes a circular approximation, so it never
// errors outward either.
func (s *RoutingService) Isochrone(ctx context.Context, latitude, longitude float64, timeMinutes int, mode models.TransportMode) [][]float64 {
	if s.APIKey == "" {
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}

	payload := map[string]interface{}{
		"locations":  [][]float64{{longitude, latitude}},
		"range":      []int{timeMinutes * 60},
		"range_type": "time",
	}
	jsonData, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/isochrones/%s", s.BaseURL, routeProfile(mode))
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}
	req.Header.Set("Authorization", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Isochrone calculation error, falling back to circle: %v", err)
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Isochrone API returned status %d, falling back to circle", resp.StatusCode)
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}

	var data isochroneResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Error parsing isochrone response, falling back to circle: %v", err)
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}

	if len(data.Features) == 0 || len(data.Features[0].Geometry.Coordinates) == 0 {
		return approximateCircularIsochrone(latitude, longitude, timeMinutes, mode)
	}

	// provider geometry is lng,lat; clients expect lat,lng
	ring := data.Features[0].Geometry.Coordinates[0]
	points := make([][]float64, 0, len(ring))
	for _, coord := range ring {
		points = append(points, []float64{coord[1], coord[0]})
	}
	return points
}

// approximateCircularIsochrone draws a closed circle of the distance
// coverable within the budget, longitude corrected for latitude
func approximateCircularIsochrone(latitude, longitude float64, timeMinutes int, mode models.TransportMode) [][]float64 {
	radiusKm := utils.SpeedKmh(mode) * float64(timeMinutes) / 60
	radiusDegrees := radiusKm / 111

	points := make([][]float64, 0, isochronePoints+1)
	for i := 0; i < isochronePoints; i++ {
		angle := float64(i) * 2 * math.Pi / isochronePoints
		lat := latitude + radiusDegrees*math.Cos(angle)
		lng := longitude + radiusDegrees*math.Sin(angle)/math.Cos(latitude*math.Pi/180)
		points = append(points, []float64{lat, lng})
	}
	points = append(points, points[0])

	return points
}
