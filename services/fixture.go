package services

import "QuickTrip/models"

// fixturePlaces is a small set of well-known places served when the spatial
// index is unreachable. Travel times are precomputed; the search never
// attempts live routing for these.
var fixturePlaces = []models.Place{
	{
		ID:           "place_1",
		Name:         "東京スカイツリー",
		Category:     models.CategoryTouristAttraction,
		Latitude:     35.7101,
		Longitude:    139.8107,
		Address:      "東京都墨田区押上1-1-2",
		Description:  "東京の新しいシンボルタワー",
		Website:      "https://www.tokyo-skytree.jp/",
		OpeningHours: "8:00-22:00",
		PriceRange:   models.PriceUnder3000,
		Facilities:   []models.Facility{models.FacilityBarrierFree, models.FacilityParking},
		IsOpen:       true,
		Distance:     1200,
		TravelTime:   15,
	},
	{
		ID:           "place_2",
		Name:         "上野公園",
		Category:     models.CategoryPark,
		Latitude:     35.7148,
		Longitude:    139.7739,
		Address:      "東京都台東区上野公園",
		Description:  "桜の名所として有名な公園",
		Website:      "https://www.kensetsu.metro.tokyo.jp/jimusho/toubuk/ueno/",
		OpeningHours: "24時間",
		PriceRange:   models.PriceFree,
		Facilities:   []models.Facility{models.FacilityChildFriendly, models.FacilityPetFriendly},
		IsOpen:       true,
		Distance:     800,
		TravelTime:   10,
	},
	{
		ID:           "place_3",
		Name:         "スターバックス 銀座店",
		Category:     models.CategoryCafe,
		Latitude:     35.6762,
		Longitude:    139.7639,
		Address:      "東京都中央区銀座",
		Description:  "銀座の中心にあるスターバックス",
		Website:      "https://www.starbucks.co.jp/",
		OpeningHours: "7:00-22:00",
		PriceRange:   models.PriceUnder1000,
		Facilities:   []models.Facility{models.FacilityChildFriendly},
		IsOpen:       true,
		Distance:     1500,
		TravelTime:   20,
	},
}

// fallbackPlaces filters the fixture set with the same predicates a live
// search applies, using each fixture's precomputed travel time for the
// cutoff. This is the degradation policy for total index failure, kept
// separate from the per-call routing estimate fallback.
func fallbackPlaces(req models.SearchRequest) []models.Place {
	places := make([]models.Place, 0, len(fixturePlaces))
	for _, place := range fixturePlaces {
		if place.TravelTime > req.TimeMinutes {
			continue
		}
		if len(req.Categories) > 0 && !containsCategory(req.Categories, place.Category) {
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
		places = append(places, place)
	}
	return places
}

// FixturePlaceByID looks a place up in the fixture set
func FixturePlaceByID(id string) (models.Place, bool) {
	for _, place := range fixturePlaces {
		if place.ID == id {
			return place, true
		}
	}
	return models.Place{}, false
}

func containsCategory(categories []models.PlaceCategory, category models.PlaceCategory) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
