package models

// SearchRequest is the validated search input. The binding tags mirror the
// ranges the frontend enforces; the engine itself assumes they already hold.
type SearchRequest struct {
	Latitude    float64         `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   float64         `json:"longitude" binding:"required,gte=-180,lte=180"`
	TimeMinutes int             `json:"timeMinutes" binding:"required,gte=5,lte=180"`
	Transport   TransportMode   `json:"transport" binding:"required,oneof=walking driving cycling transit"`
	Categories  []PlaceCategory `json:"categories,omitempty"`
	PriceRange  PriceRange      `json:"priceRange,omitempty"`
	Facilities  []Facility      `json:"facilities,omitempty"`
	OpenNow     bool            `json:"openNow,omitempty"`
}

type Center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchResponse echoes the origin and the radius actually searched along
// with the filtered, sorted places
type SearchResponse struct {
	Places []Place `json:"places"`
	Center Center  `json:"center"`
	Radius int     `json:"radius"`
}

// IsochroneRequest asks for the boundary reachable within the time budget
type IsochroneRequest struct {
	Latitude    float64       `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   float64       `json:"longitude" binding:"required,gte=-180,lte=180"`
	TimeMinutes int           `json:"timeMinutes" binding:"required,gte=5,lte=180"`
	Transport   TransportMode `json:"transport" binding:"required,oneof=walking driving cycling transit"`
}

type IsochroneResponse struct {
	Polygon [][]float64 `json:"polygon"`
}
