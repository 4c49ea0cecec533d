package services

import (
	"QuickTrip/models"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverpassService(url string) *OverpassService {
	return &OverpassService{
		BaseURL:    url,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func overpassServer(t *testing.T, body string, lastQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastQuery != nil {
			query, _ := io.ReadAll(r.Body)
			*lastQuery = string(query)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func TestSearchPlacesParsesAndSortsByDistance(t *testing.T) {
	// farther element first, unnamed noise, and a node/way duplicate
	body := `{"elements":[
		{"type":"node","id":2,"lat":35.005,"lon":139.0,"tags":{"name":"Teishoku An","amenity":"restaurant","cuisine":"japanese","tourism":"attraction"}},
		{"type":"node","id":1,"lat":35.001,"lon":139.0,"tags":{"name":"Cafe Hana","amenity":"cafe","wheelchair":"yes","addr:housenumber":"1","addr:street":"Chuo Dori","addr:city":"Tokyo","addr:postcode":"104-0061","website":"https://cafehana.example","opening_hours":"9:00-18:00"}},
		{"type":"node","id":3,"lat":35.002,"lon":139.0,"tags":{"amenity":"cafe"}},
		{"type":"way","id":4,"lat":35.001,"lon":139.0,"tags":{"name":"Cafe Hana","amenity":"cafe"}}
	]}`
	var lastQuery string
	server := overpassServer(t, body, &lastQuery)
	defer server.Close()

	service := newTestOverpassService(server.URL)
	places, err := service.SearchPlaces(context.Background(), 35.0, 139.0, 2500, nil)
	require.NoError(t, err)

	// unnamed element dropped, duplicate collapsed
	require.Len(t, places, 2)

	// closest first
	assert.Equal(t, "osm_node_1", places[0].ID)
	assert.Equal(t, "osm_node_2", places[1].ID)
	assert.Less(t, places[0].Distance, places[1].Distance)

	cafe := places[0]
	assert.Equal(t, "Cafe Hana", cafe.Name)
	assert.Equal(t, models.CategoryCafe, cafe.Category)
	assert.Equal(t, "1 Chuo Dori Tokyo 104-0061", cafe.Address)
	assert.Equal(t, "cafe", cafe.Description)
	assert.Equal(t, "https://cafehana.example", cafe.Website)
	assert.Equal(t, "9:00-18:00", cafe.OpeningHours)
	assert.Equal(t, models.PriceUnder1000, cafe.PriceRange)
	assert.Equal(t, []models.Facility{models.FacilityBarrierFree}, cafe.Facilities)
	assert.True(t, cafe.IsOpen)
	assert.Zero(t, cafe.TravelTime)

	// tourism wins over amenity in the category precedence
	restaurant := places[1]
	assert.Equal(t, models.CategoryTouristAttraction, restaurant.Category)
	assert.Equal(t, "restaurant, attraction, Cuisine: japanese", restaurant.Description)
}

func TestSearchPlacesCategoryPredicates(t *testing.T) {
	var lastQuery string
	server := overpassServer(t, `{"elements":[]}`, &lastQuery)
	defer server.Close()

	service := newTestOverpassService(server.URL)
	_, err := service.SearchPlaces(context.Background(), 35.6762, 139.6503, 2500,
		[]models.PlaceCategory{models.CategoryCafe})
	require.NoError(t, err)

	assert.Contains(t, lastQuery, `node["amenity"="cafe"]`)
	assert.NotContains(t, lastQuery, `node["amenity"="restaurant"]`)
	assert.NotContains(t, lastQuery, `node["shop"]`)
}

func TestSearchPlacesDefaultPredicates(t *testing.T) {
	var lastQuery string
	server := overpassServer(t, `{"elements":[]}`, &lastQuery)
	defer server.Close()

	service := newTestOverpassService(server.URL)
	_, err := service.SearchPlaces(context.Background(), 35.6762, 139.6503, 2500, nil)
	require.NoError(t, err)

	// the broad POI sweep
	for _, predicate := range []string{
		`node["amenity"="restaurant"]`,
		`node["amenity"="cafe"]`,
		`node["amenity"="bar"]`,
		`node["amenity"="fast_food"]`,
		`node["tourism"="attraction"]`,
		`node["tourism"="museum"]`,
		`node["leisure"="park"]`,
		`node["shop"]`,
	} {
		assert.Contains(t, lastQuery, predicate)
	}
}

func TestSearchPlacesUnknownCategoryFallsBackToDefaults(t *testing.T) {
	var lastQuery string
	server := overpassServer(t, `{"elements":[]}`, &lastQuery)
	defer server.Close()

	service := newTestOverpassService(server.URL)
	_, err := service.SearchPlaces(context.Background(), 35.6762, 139.6503, 2500,
		[]models.PlaceCategory{models.PlaceCategory("onsen")})
	require.NoError(t, err)

	assert.Contains(t, lastQuery, `node["shop"]`)
}

func TestSearchPlacesCapsResults(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"elements":[`)
	for i := 0; i < 60; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb,
			`{"type":"node","id":%d,"lat":%f,"lon":139.0,"tags":{"name":"Cafe %d","amenity":"cafe"}}`,
			i+1, 35.0+float64(i)*0.001, i+1)
	}
	sb.WriteString(`]}`)

	server := overpassServer(t, sb.String(), nil)
	defer server.Close()

	service := newTestOverpassService(server.URL)
	places, err := service.SearchPlaces(context.Background(), 35.0, 139.0, 10000, nil)
	require.NoError(t, err)

	assert.Len(t, places, maxIndexResults)
}

func TestSearchPlacesServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	service := newTestOverpassService(server.URL)
	_, err := service.SearchPlaces(context.Background(), 35.0, 139.0, 2500, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSearchPlacesUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	service := newTestOverpassService(server.URL)
	_, err := service.SearchPlaces(context.Background(), 35.0, 139.0, 2500, nil)

	require.Error(t, err)
}
