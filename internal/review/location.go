package review

import (
	"strings"

	"github.com/sstent/garmin-wrapped/internal/models"
)

// Timezone segments too broad to name a place.
var vagueZoneSegments = map[string]bool{
	"GMT": true, "UTC": true, "Etc": true, "Pacific": true,
	"Central": true, "Mountain": true, "Eastern": true,
}

// Regions whose zones carry offsets rather than places.
var vagueZoneRegions = map[string]bool{"GMT": true, "UTC": true, "Etc": true}

// resolveLocation picks the top location. Explicit city names win over
// coordinate clusters, which win over the timezone of a representative
// activity; the placeholder is used when nothing else is known.
func resolveLocation(a *aggregate) models.Location {
	if name, count := topCity(a); count > 0 {
		return models.Location{Name: name, Count: count, Source: models.LocationSourceCity}
	}
	if c := topCluster(a); c != nil {
		return models.Location{
			Name:           defaultPlaceName,
			Count:          c.count,
			Source:         models.LocationSourceCoords,
			Lat:            c.lat,
			Lng:            c.lng,
			NeedsGeocoding: true,
		}
	}
	rep := a.spotlight
	if rep == nil {
		rep = a.first
	}
	if rep != nil {
		if city, ok := CityFromTimezone(rep.Timezone); ok {
			return models.Location{Name: city, Count: a.total, Source: models.LocationSourceTimezone}
		}
	}
	return models.Location{Name: defaultPlaceName, Count: a.total, Source: models.LocationSourceDefault}
}

func topCity(a *aggregate) (string, int) {
	var best string
	var bestCount int
	for _, name := range a.cityOrder {
		if n := a.cities[name]; n > bestCount {
			best, bestCount = name, n
		}
	}
	return best, bestCount
}

func topCluster(a *aggregate) *coordCluster {
	var best *coordCluster
	for _, c := range a.clusterOrder {
		if best == nil || c.count > best.count {
			best = c
		}
	}
	return best
}

// CityFromTimezone derives a city name from a "Region/City" timezone such as
// "Europe/London" or "(GMT-08:00) America/Los_Angeles". Zones without a
// city segment, or whose segments are generic (Etc/GMT+5, US/Pacific), are
// rejected.
func CityFromTimezone(tz string) (string, bool) {
	parts := strings.Split(zoneName(tz), "/")
	if len(parts) < 2 {
		return "", false
	}
	region, city := parts[0], parts[len(parts)-1]
	if city == "" || vagueZoneRegions[region] || vagueZoneSegments[city] {
		return "", false
	}
	return strings.ReplaceAll(city, "_", " "), true
}
