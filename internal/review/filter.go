package review

import (
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

// Accepted start_date layouts. Values without an offset are read as UTC.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStart parses an activity start timestamp and returns it in UTC.
func ParseStart(s string) (time.Time, bool) {
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// datedRecord pairs a record with its parsed UTC start.
type datedRecord struct {
	rec   *models.ActivityRecord
	start time.Time
}

// yearBounds returns [Jan 1 year, Jan 1 year+1) in UTC.
func yearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// filterYear keeps records starting inside the year, preserving input order.
// Records whose start cannot be parsed are dropped.
func filterYear(records []models.ActivityRecord, year int) []datedRecord {
	from, to := yearBounds(year)
	out := make([]datedRecord, 0, len(records))
	for i := range records {
		start, ok := ParseStart(records[i].StartDate)
		if !ok || start.Before(from) || !start.Before(to) {
			continue
		}
		out = append(out, datedRecord{rec: &records[i], start: start})
	}
	return out
}

// FilterYear returns the records whose UTC start falls within the given year.
func FilterYear(records []models.ActivityRecord, year int) []models.ActivityRecord {
	dated := filterYear(records, year)
	out := make([]models.ActivityRecord, len(dated))
	for i, d := range dated {
		out[i] = *d.rec
	}
	return out
}
