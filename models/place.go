package models

type TransportMode string

const (
	TransportWalking TransportMode = "walking"
	TransportDriving TransportMode = "driving"
	TransportCycling TransportMode = "cycling"
	TransportTransit TransportMode = "transit"
)

type PlaceCategory string

const (
	CategoryTouristAttraction PlaceCategory = "tourist_attraction"
	CategoryLeisure           PlaceCategory = "leisure"
	CategoryPark              PlaceCategory = "park"
	CategoryRestaurant        PlaceCategory = "restaurant"
	CategoryCafe              PlaceCategory = "cafe"
)

type PriceRange string

const (
	PriceFree      PriceRange = "free"
	PriceUnder1000 PriceRange = "under_1000"
	PriceUnder3000 PriceRange = "under_3000"
	PriceOver3000  PriceRange = "over_3000"
)

type Facility string

const (
	FacilityChildFriendly Facility = "child_friendly"
	FacilityPetFriendly   Facility = "pet_friendly"
	FacilityParking       Facility = "parking"
	FacilityBarrierFree   Facility = "barrier_free"
)

// Place represents a point of interest enriched with distance and travel time
// relative to the search origin
type Place struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     PlaceCategory `json:"category"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Address      string        `json:"address,omitempty"`
	Description  string        `json:"description,omitempty"`
	Website      string        `json:"website,omitempty"`
	OpeningHours string        `json:"openingHours,omitempty"`
	PriceRange   PriceRange    `json:"priceRange,omitempty"`
	Facilities   []Facility    `json:"facilities,omitempty"`
	IsOpen       bool          `json:"isOpen"`
	// Distance from the search origin in meters, always populated
	Distance int `json:"distance"`
	// TravelTime in minutes, stays 0 until the routing phase fills it in
	TravelTime int `json:"travelTime"`
}

// HasAnyFacility reports whether the place offers at least one of the
// requested facilities
func (p Place) HasAnyFacility(wanted []Facility) bool {
	for _, w := range wanted {
		for _, f := range p.Facilities {
			if f == w {
				return true
			}
		}
	}
	return false
}
