package models

// Report is the year-in-review summary for one user and one calendar year.
// It is built once per (records, year) and never mutated afterwards.
type Report struct {
	Year int `json:"year"`

	TotalActivities   int     `json:"total_activities"`
	TotalDistance     float64 `json:"total_distance"` // meters
	TotalCalories     int     `json:"total_calories"`
	TotalTime         float64 `json:"total_time"` // seconds
	TotalKudos        int     `json:"total_kudos"`
	ActiveDays        int     `json:"active_days"`
	PercentTimeMoving float64 `json:"percent_time_moving"`
	KudosPerKm        float64 `json:"kudos_per_km"`
	LongestStreak     int     `json:"longest_streak"` // consecutive ISO weeks
	CommuterCount     int     `json:"commuter_count"`

	Elevation Elevation `json:"elevation"`
	Food      Food      `json:"food"`
	Fun       FunStats  `json:"fun"`
	Olympics  Olympics  `json:"olympics"`
	Speed     Speed     `json:"speed"`
	Charts    Charts    `json:"charts"`

	ShortestActivity  *ActivitySummary `json:"shortest_activity,omitempty"`
	SpotlightActivity *ActivitySummary `json:"spotlight_activity,omitempty"`
	MostLikedActivity *ActivitySummary `json:"most_liked_activity,omitempty"`

	NewActivity         *NewActivity   `json:"new_activity,omitempty"`
	TopSports           []SportRank    `json:"top_sports"`
	PaceByCategory      []CategoryPace `json:"pace_by_category"`
	TopMonthsByDistance []MonthStats   `json:"top_months_by_distance"`
	Months              [12]MonthStats `json:"months"`
	TopLocation         Location       `json:"top_location"`
	Vibe                string         `json:"vibe"`
	VibeTrait           VibeTrait      `json:"vibe_trait"`
}

// ActivitySummary identifies one activity surfaced by the report.
type ActivitySummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name,omitempty"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	Distance   float64 `json:"distance"`
	MovingTime float64 `json:"moving_time"`
	KudosCount int     `json:"kudos_count"`
	MaxSpeed   float64 `json:"max_speed"`
}

// Elevation holds total climbing and playful comparisons.
type Elevation struct {
	Total        float64 `json:"total"` // meters
	Everests     float64 `json:"everests"`
	EiffelTowers float64 `json:"eiffel_towers"`
}

// Food expresses total calories as food items.
type Food struct {
	Pizza   int `json:"pizza"`
	Donuts  int `json:"donuts"`
	Burgers int `json:"burgers"`
}

// FunStats expresses total moving time as media consumed.
type FunStats struct {
	Songs  int `json:"songs"`
	Movies int `json:"movies"`
}

// Olympics expresses distance as track and pool units.
type Olympics struct {
	Sprints     int `json:"sprints"`
	PoolLengths int `json:"pool_lengths"`
}

// Speed holds the speed extremes of the year.
type Speed struct {
	Max             float64          `json:"max"` // m/s
	FastestActivity *ActivitySummary `json:"fastest_activity,omitempty"`
	SlowestActivity *ActivitySummary `json:"slowest_activity,omitempty"`
	SlowestCategory string           `json:"slowest_category,omitempty"`
	PercentDrop     float64          `json:"percent_drop,omitempty"`
}

// Charts holds the time-of-day and day-of-week histograms (UTC).
type Charts struct {
	Hourly [24]int `json:"hourly"`
	Daily  [7]int  `json:"daily"` // Monday first
}

// NewActivity is the least practised category of the year.
type NewActivity struct {
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	FirstDate string `json:"first_date"`
	Count     int    `json:"count"`
}

// SportRank is one entry of the top-categories list.
type SportRank struct {
	Type         string  `json:"type"`
	Count        int     `json:"count"`
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration"`
	ByDistance   bool    `json:"by_distance"`
	DisplayValue string  `json:"display_value"`
}

// CategoryPace is the average speed of one distance-ranked category.
type CategoryPace struct {
	Type     string  `json:"type"`
	AvgSpeed float64 `json:"avg_speed"` // m/s
	Display  string  `json:"display"`
}

// MonthStats aggregates one calendar month.
type MonthStats struct {
	Month    string  `json:"month"`
	Count    int     `json:"count"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// Location source values.
const (
	LocationSourceCity     = "city"
	LocationSourceCoords   = "coords"
	LocationSourceTimezone = "timezone"
	LocationSourceDefault  = "default"
)

// Location is the inferred home location. When NeedsGeocoding is set the
// name is a placeholder and Lat/Lng should be reverse geocoded by the caller.
type Location struct {
	Name           string  `json:"name"`
	Count          int     `json:"count"`
	Source         string  `json:"source"`
	Lat            float64 `json:"lat,omitempty"`
	Lng            float64 `json:"lng,omitempty"`
	NeedsGeocoding bool    `json:"needs_geocoding,omitempty"`
}

// VibeTrait describes a vibe label.
type VibeTrait struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
