package review

import "strings"

// family groups category labels that behave the same way in the report.
type family int

const (
	familyOther family = iota
	familyRunning
	familyCycling
	familySwimming
	familyWalking
	familyHiking
	familyPaddling
	familySkiing
	familySkating
	familyRelaxation
)

// Labels are matched after normalizeCategory, so Strava types ("VirtualRide"),
// Garmin type keys ("trail_running") and FIT sport names ("Cycling") share entries.
var categoryFamilies = map[string]family{
	"run": familyRunning, "running": familyRunning, "trailrun": familyRunning,
	"trailrunning": familyRunning, "virtualrun": familyRunning, "treadmillrunning": familyRunning,
	"streetrunning": familyRunning, "trackrunning": familyRunning, "indoorrunning": familyRunning,

	"ride": familyCycling, "cycling": familyCycling, "virtualride": familyCycling,
	"mountainbikeride": familyCycling, "gravelride": familyCycling, "ebikeride": familyCycling,
	"emountainbikeride": familyCycling, "velomobile": familyCycling, "handcycle": familyCycling,
	"roadbiking": familyCycling, "mountainbiking": familyCycling, "gravelcycling": familyCycling,
	"indoorcycling": familyCycling, "virtualcycling": familyCycling, "ebiking": familyCycling,

	"swim": familySwimming, "swimming": familySwimming, "lapswimming": familySwimming,
	"openwaterswimming": familySwimming,

	"walk": familyWalking, "walking": familyWalking, "casualwalking": familyWalking,
	"speedwalking": familyWalking,

	"hike": familyHiking, "hiking": familyHiking,

	"kayaking": familyPaddling, "canoeing": familyPaddling, "rowing": familyPaddling,
	"standuppaddling": familyPaddling, "paddling": familyPaddling, "virtualrow": familyPaddling,

	"nordicski": familySkiing, "backcountryski": familySkiing, "crosscountryskiing": familySkiing,
	"backcountryskiing": familySkiing, "rollerski": familySkiing,

	"iceskate": familySkating, "inlineskate": familySkating, "inlineskating": familySkating,

	"yoga": familyRelaxation, "pilates": familyRelaxation, "meditation": familyRelaxation,
	"stretching": familyRelaxation, "breathwork": familyRelaxation,
}

// normalizeCategory lower-cases a label and keeps only letters and digits.
func normalizeCategory(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func familyOf(label string) family {
	return categoryFamilies[normalizeCategory(label)]
}

// IsDistanceRanked reports whether a category is ranked and displayed by
// cumulative distance. All other categories are ranked by cumulative time.
func IsDistanceRanked(label string) bool {
	switch familyOf(label) {
	case familyRunning, familyCycling, familySwimming, familyWalking,
		familyHiking, familyPaddling, familySkiing, familySkating:
		return true
	}
	return false
}

// IsCycling reports whether a category uses the cycling calorie estimate.
func IsCycling(label string) bool {
	return familyOf(label) == familyCycling
}

// IsRelaxation reports whether a category counts towards the Zen Master vibe.
func IsRelaxation(label string) bool {
	return familyOf(label) == familyRelaxation
}
