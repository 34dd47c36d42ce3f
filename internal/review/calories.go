package review

import "github.com/sstent/garmin-wrapped/internal/models"

// ResolveCalories returns the energy of one activity in kcal. Sources are
// tried in order: the explicit calories field, the kilojoules field
// converted at kcalPerKilojoule, then a distance estimate whose per-km
// coefficient is lower for cycling than for everything else.
func ResolveCalories(rec *models.ActivityRecord) float64 {
	switch {
	case rec.Calories > 0:
		return rec.Calories
	case rec.Kilojoules > 0:
		return rec.Kilojoules * kcalPerKilojoule
	}
	km := rec.Distance / 1000
	if km <= 0 {
		return 0
	}
	if IsCycling(rec.Type) {
		return km * cyclingKcalPerKm
	}
	return km * defaultKcalPerKm
}
