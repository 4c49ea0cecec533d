package environment

import "os"

func GetOpenRouteServiceKey() string {
	return os.Getenv("OPENROUTESERVICE_API_KEY")
}

// GetOverpassURL returns the Overpass interpreter endpoint, overridable for
// self-hosted mirrors
func GetOverpassURL() string {
	if url := os.Getenv("OVERPASS_API_URL"); url != "" {
		return url
	}
	return "https://overpass-api.de/api/interpreter"
}

func GetRoutingBaseURL() string {
	if url := os.Getenv("OPENROUTESERVICE_BASE_URL"); url != "" {
		return url
	}
	return "https://api.openrouteservice.org/v2"
}
