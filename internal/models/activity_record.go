package models

// ActivityRecord is a single activity as supplied by a record source
// (Strava-style JSON export, Garmin API, FIT/TCX/GPX file, or the local store).
// Zero numeric values mean "not recorded".
type ActivityRecord struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name,omitempty"`
	Type          string    `json:"type"`
	StartDate     string    `json:"start_date"`            // ISO-8601, UTC unless it carries an offset
	Distance      float64   `json:"distance,omitempty"`    // meters
	MovingTime    float64   `json:"moving_time,omitempty"` // seconds
	ElevationGain float64   `json:"total_elevation_gain,omitempty"`
	Calories      float64   `json:"calories,omitempty"`   // kcal
	Kilojoules    float64   `json:"kilojoules,omitempty"` // kJ
	KudosCount    int       `json:"kudos_count,omitempty"`
	MaxSpeed      float64   `json:"max_speed,omitempty"` // m/s
	StartLatLng   []float64 `json:"start_latlng,omitempty"`
	City          string    `json:"location_city,omitempty"`
	Timezone      string    `json:"timezone,omitempty"`
}

// StartCoords returns the start coordinate if the record has one.
func (a *ActivityRecord) StartCoords() (lat, lng float64, ok bool) {
	if len(a.StartLatLng) != 2 {
		return 0, 0, false
	}
	lat, lng = a.StartLatLng[0], a.StartLatLng[1]
	if lat == 0 && lng == 0 {
		return 0, 0, false
	}
	return lat, lng, true
}

// SetStartCoords stores a start coordinate.
func (a *ActivityRecord) SetStartCoords(lat, lng float64) {
	a.StartLatLng = []float64{lat, lng}
}
