package services

import (
	"QuickTrip/config/environment"
	"QuickTrip/models"
	"QuickTrip/utils"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
)

// maxIndexResults caps how many places one search can return
const maxIndexResults = 50

// dedupPrecision is the geohash precision used to spot the same POI coming
// back as both a node and a way (~150m cells)
const dedupPrecision = 7

// OverpassService queries the OpenStreetMap Overpass index for places
type OverpassService struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewOverpassService() *OverpassService {
	return &OverpassService{
		BaseURL: environment.GetOverpassURL(),
		HTTPClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type overpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// categoryPredicates maps a requested category to its Overpass tag
// predicates. The {{bbox}} placeholder is filled per query.
var categoryPredicates = map[models.PlaceCategory][]string{
	models.CategoryTouristAttraction: {
		`node["tourism"="attraction"]({{bbox}});`,
		`node["tourism"="museum"]({{bbox}});`,
	},
	models.CategoryRestaurant: {`node["amenity"="restaurant"]({{bbox}});`},
	models.CategoryCafe:       {`node["amenity"="cafe"]({{bbox}});`},
	models.CategoryPark:       {`node["leisure"="park"]({{bbox}});`},
	models.CategoryLeisure: {
		`node["amenity"="cinema"]({{bbox}});`,
		`node["amenity"="bar"]({{bbox}});`,
		`node["leisure"]({{bbox}});`,
	},
}

// defaultPredicates is the broad POI sweep used when no category resolves
var defaultPredicates = []string{
	`node["amenity"="restaurant"]({{bbox}});`,
	`node["amenity"="cafe"]({{bbox}});`,
	`node["amenity"="bar"]({{bbox}});`,
	`node["amenity"="fast_food"]({{bbox}});`,
	`node["tourism"="attraction"]({{bbox}});`,
	`node["tourism"="museum"]({{bbox}});`,
	`node["leisure"="park"]({{bbox}});`,
	`node["shop"]({{bbox}});`,
}

// SearchPlaces queries the Overpass index for named places inside the radius
// around the origin, capped to the closest maxIndexResults. Any transport,
// status or parse failure is returned to the caller; this layer never
// retries and never degrades on its own.
func (s *OverpassService) SearchPlaces(ctx context.Context, latitude, longitude float64, radiusMeters int, categories []models.PlaceCategory) ([]models.Place, error) {
	query := s.buildQuery(latitude, longitude, radiusMeters, categories)

	req, err := http.NewRequestWithContext(ctx, "POST", s.BaseURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("error building Overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", "QuickTrip/1.0")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling Overpass API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Overpass API error: %d - %s", resp.StatusCode, string(body))
	}

	var data overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error parsing Overpass response: %w", err)
	}

	return s.convertToPlaces(data.Elements, latitude, longitude), nil
}

// buildQuery assembles the Overpass QL body scoped to the bounding box
func (s *OverpassService) buildQuery(latitude, longitude float64, radiusMeters int, categories []models.PlaceCategory) string {
	bbox := utils.BoundingBoxAround(latitude, longitude, float64(radiusMeters)).String()

	var predicates []string
	for _, category := range categories {
		// unknown categories contribute no predicate
		predicates = append(predicates, categoryPredicates[category]...)
	}
	if len(predicates) == 0 {
		predicates = defaultPredicates
	}

	var sb strings.Builder
	sb.WriteString("[out:json][timeout:25];\n(")
	for _, p := range predicates {
		sb.WriteString(strings.ReplaceAll(p, "{{bbox}}", bbox))
	}
	sb.WriteString(");\nout geom;")
	return sb.String()
}

func (s *OverpassService) convertToPlaces(elements []overpassElement, centerLat, centerLng float64) []models.Place {
	places := make([]models.Place, 0, len(elements))
	seen := make(map[string]bool)

	for _, element := range elements {
		name := element.Tags["name"]
		if name == "" {
			// unnamed noise, not worth showing
			continue
		}

		// OSM often carries the same POI as a node and a way
		dedupKey := name + "|" + geohash.EncodeWithPrecision(element.Lat, element.Lon, dedupPrecision)
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true

		distance := utils.HaversineDistance(centerLat, centerLng, element.Lat, element.Lon)

		places = append(places, models.Place{
			ID:           fmt.Sprintf("osm_%s_%d", element.Type, element.ID),
			Name:         name,
			Category:     mapCategory(element.Tags),
			Latitude:     element.Lat,
			Longitude:    element.Lon,
			Address:      buildAddress(element.Tags),
			Description:  buildDescription(element.Tags),
			Website:      element.Tags["website"],
			OpeningHours: element.Tags["opening_hours"],
			PriceRange:   estimatePriceRange(element.Tags),
			Facilities:   extractFacilities(element.Tags),
			IsOpen:       true, // would need opening-hours parsing for accurate info
			Distance:     int(math.Round(distance)),
			TravelTime:   0, // filled in later by the routing phase
		})
	}

	sort.Slice(places, func(i, j int) bool {
		return places[i].Distance < places[j].Distance
	})

	if len(places) > maxIndexResults {
		places = places[:maxIndexResults]
	}
	return places
}

// categoryRules maps OSM tags to a place category, evaluated top-down so the
// first match wins
var categoryRules = []struct {
	matches  func(tags map[string]string) bool
	category models.PlaceCategory
}{
	{func(t map[string]string) bool { return t["tourism"] != "" }, models.CategoryTouristAttraction},
	{func(t map[string]string) bool { return t["amenity"] == "restaurant" }, models.CategoryRestaurant},
	{func(t map[string]string) bool { return t["amenity"] == "cafe" }, models.CategoryCafe},
	{func(t map[string]string) bool { return t["leisure"] == "park" || t["leisure"] == "garden" }, models.CategoryPark},
	{func(t map[string]string) bool { return t["shop"] != "" }, models.CategoryLeisure},
	{func(t map[string]string) bool {
		switch t["amenity"] {
		case "cinema", "theatre", "nightclub", "bar", "pub":
			return true
		}
		return false
	}, models.CategoryLeisure},
}

func mapCategory(tags map[string]string) models.PlaceCategory {
	for _, rule := range categoryRules {
		if rule.matches(tags) {
			return rule.category
		}
	}
	return models.CategoryTouristAttraction
}

func buildAddress(tags map[string]string) string {
	var parts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode"} {
		if tags[key] != "" {
			parts = append(parts, tags[key])
		}
	}
	return strings.Join(parts, " ")
}

func buildDescription(tags map[string]string) string {
	var parts []string
	if tags["amenity"] != "" {
		parts = append(parts, tags["amenity"])
	}
	if tags["tourism"] != "" {
		parts = append(parts, tags["tourism"])
	}
	if tags["leisure"] != "" {
		parts = append(parts, tags["leisure"])
	}
	if tags["shop"] != "" {
		parts = append(parts, tags["shop"]+" shop")
	}
	if tags["cuisine"] != "" {
		parts = append(parts, "Cuisine: "+tags["cuisine"])
	}
	return strings.Join(parts, ", ")
}

// estimatePriceRange is a rough heuristic keyed on the POI type; it is a
// display hint, not authoritative pricing
func estimatePriceRange(tags map[string]string) models.PriceRange {
	switch {
	case tags["amenity"] == "fast_food", tags["amenity"] == "cafe":
		return models.PriceUnder1000
	case tags["amenity"] == "restaurant", tags["tourism"] == "museum":
		return models.PriceUnder3000
	case tags["leisure"] == "park":
		return models.PriceFree
	default:
		return models.PriceUnder1000
	}
}

func extractFacilities(tags map[string]string) []models.Facility {
	var facilities []models.Facility
	if tags["wheelchair"] == "yes" {
		facilities = append(facilities, models.FacilityBarrierFree)
	}
	return facilities
}
