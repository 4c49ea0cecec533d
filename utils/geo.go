package utils

import (
	"QuickTrip/models"
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// metersPerDegree is the rough length of one degree of latitude
const metersPerDegree = 111000.0

// BoundingBox is the areal window derived from origin + radius, used to
// scope spatial index queries. Internal value, never returned to clients.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

// String renders the box in Overpass QL order: south,west,north,east
func (b BoundingBox) String() string {
	return fmt.Sprintf("%f,%f,%f,%f", b.South, b.West, b.North, b.East)
}

// HaversineDistance returns the great-circle distance in meters between two
// coordinates
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// BoundingBoxAround derives the box covering radiusMeters around a center.
// The longitude delta blows up as cos(lat) approaches 0 near the poles;
// callers enforce |lat| < 90 so this is a precision loss there, not a crash.
func BoundingBoxAround(lat, lng float64, radiusMeters float64) BoundingBox {
	latDelta := radiusMeters / metersPerDegree
	lngDelta := radiusMeters / (metersPerDegree * math.Cos(lat*math.Pi/180))

	return BoundingBox{
		South: lat - latDelta,
		West:  lng - lngDelta,
		North: lat + latDelta,
		East:  lng + lngDelta,
	}
}

// SpeedKmh returns the assumed travel speed per transport mode in km/h.
// Unknown modes get the walking speed, the most conservative choice.
func SpeedKmh(mode models.TransportMode) float64 {
	switch mode {
	case models.TransportWalking:
		return 5
	case models.TransportCycling:
		return 15
	case models.TransportDriving:
		return 30
	case models.TransportTransit:
		return 20
	default:
		return 5
	}
}

// SpeedMetersPerMinute is the same table expressed in m/min
// (walking 83.33, cycling 250, driving 500, transit 333.33)
func SpeedMetersPerMinute(mode models.TransportMode) float64 {
	return SpeedKmh(mode) * 1000 / 60
}

// RadiusForBudget converts a time budget into a search radius in meters
func RadiusForBudget(timeMinutes int, mode models.TransportMode) int {
	return int(math.Round(SpeedKmh(mode) * float64(timeMinutes) / 60 * 1000))
}

// EstimateTravelMinutes is the straight-line fallback estimate used whenever
// a live route is unavailable
func EstimateTravelMinutes(distanceMeters float64, mode models.TransportMode) int {
	return int(math.Ceil(distanceMeters / 1000 / SpeedKmh(mode) * 60))
}
