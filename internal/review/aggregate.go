package review

import (
	"math"
	"strings"
	"time"
	_ "time/tzdata" // activity timezones resolve the same on every host

	"github.com/sstent/garmin-wrapped/internal/calendar"
	"github.com/sstent/garmin-wrapped/internal/models"
)

// categoryStats accumulates one category label.
type categoryStats struct {
	name        string
	count       int
	distance    float64
	duration    float64
	maxDistance float64
	maxSpeed    float64
	minAvgSpeed float64
	slowest     *models.ActivityRecord
	first       *models.ActivityRecord
	firstStart  time.Time
}

// metric is the value a category is ranked by.
func (c *categoryStats) metric() float64 {
	if IsDistanceRanked(c.name) {
		return c.distance
	}
	return c.duration
}

type monthBucket struct {
	count    int
	distance float64
	duration float64
}

type gridCell struct {
	lat, lng int
}

// coordCluster keeps a running mean instead of the raw points.
type coordCluster struct {
	count int
	lat   float64
	lng   float64
}

func (c *coordCluster) add(lat, lng float64) {
	n := float64(c.count)
	c.lat = (c.lat*n + lat) / (n + 1)
	c.lng = (c.lng*n + lng) / (n + 1)
	c.count++
}

type civilDate struct {
	y, m, d int
}

// aggregate is the scratch state of one report computation. It is owned by
// a single Analyze call and discarded once the report is assembled.
type aggregate struct {
	total     int
	distance  float64
	duration  float64
	elevation float64
	calories  float64
	kudos     int

	hourly [24]int
	daily  [7]int // Monday first
	months [12]monthBucket

	maxSpeed float64
	fastest  *models.ActivityRecord
	shortest *models.ActivityRecord

	activeDays  map[civilDate]struct{}
	activeWeeks map[calendar.Week]struct{}

	categories    map[string]*categoryStats
	categoryOrder []*categoryStats

	cities       map[string]int
	cityOrder    []string
	clusters     map[gridCell]*coordCluster
	clusterOrder []*coordCluster

	first     *models.ActivityRecord
	spotlight *models.ActivityRecord
	mostLiked *models.ActivityRecord

	morning  int
	night    int
	lunch    int
	weekend  int
	commuter int

	zones map[string]*time.Location
}

func newAggregate() *aggregate {
	return &aggregate{
		activeDays:  make(map[civilDate]struct{}),
		activeWeeks: make(map[calendar.Week]struct{}),
		categories:  make(map[string]*categoryStats),
		cities:      make(map[string]int),
		clusters:    make(map[gridCell]*coordCluster),
		zones:       make(map[string]*time.Location),
	}
}

// aggregateRecords runs the single pass over the year's records.
func aggregateRecords(records []datedRecord) *aggregate {
	agg := newAggregate()
	for _, d := range records {
		agg.add(d.rec, d.start)
	}
	return agg
}

func (a *aggregate) add(rec *models.ActivityRecord, start time.Time) {
	if a.first == nil {
		a.first = rec
	}
	a.total++

	a.distance += rec.Distance
	a.duration += rec.MovingTime
	a.elevation += rec.ElevationGain
	a.calories += ResolveCalories(rec)
	a.kudos += rec.KudosCount

	y, m, d := start.Date()
	hour := start.Hour()
	dow := calendar.DayOfWeek(y, int(m), d)
	a.hourly[hour]++
	a.daily[(dow+6)%7]++

	if rec.MaxSpeed > a.maxSpeed {
		a.maxSpeed = rec.MaxSpeed
		a.fastest = rec
	}
	if rec.Distance > 0 && (a.shortest == nil || rec.Distance < a.shortest.Distance) {
		a.shortest = rec
	}

	local := a.localDate(start, rec.Timezone)
	a.activeDays[local] = struct{}{}
	a.activeWeeks[calendar.ISOWeek(local.y, local.m, local.d)] = struct{}{}

	month := &a.months[m-1]
	month.count++
	month.distance += rec.Distance
	month.duration += rec.MovingTime

	a.addCategory(rec, start)
	a.addLocation(rec)

	if rec.MovingTime > 0 && (a.spotlight == nil || rec.MovingTime > a.spotlight.MovingTime) {
		a.spotlight = rec
	}
	if rec.KudosCount > 0 && (a.mostLiked == nil || rec.KudosCount > a.mostLiked.KudosCount) {
		a.mostLiked = rec
	}

	switch {
	case hour >= morningStartHour && hour <= morningEndHour:
		a.morning++
	case hour >= lunchStartHour && hour <= lunchEndHour:
		a.lunch++
	case hour >= nightStartHour && hour <= nightEndHour:
		a.night++
	}
	weekend := dow == calendar.Saturday || dow == calendar.Sunday
	if weekend {
		a.weekend++
	}
	minutes := rec.MovingTime / 60
	if !weekend && minutes > commuteMinMinutes && minutes < commuteMaxMinutes {
		a.commuter++
	}
}

func (a *aggregate) addCategory(rec *models.ActivityRecord, start time.Time) {
	name := rec.Type
	if name == "" {
		name = "Unknown"
	}
	c, ok := a.categories[name]
	if !ok {
		c = &categoryStats{
			name:        name,
			minAvgSpeed: math.Inf(1),
			first:       rec,
			firstStart:  start,
		}
		a.categories[name] = c
		a.categoryOrder = append(a.categoryOrder, c)
	}

	c.count++
	c.distance += rec.Distance
	c.duration += rec.MovingTime
	if rec.Distance > c.maxDistance {
		c.maxDistance = rec.Distance
	}
	if rec.MaxSpeed > c.maxSpeed {
		c.maxSpeed = rec.MaxSpeed
	}
	if rec.Distance > 0 && rec.MovingTime > 0 {
		avg := rec.Distance / rec.MovingTime
		if avg < c.minAvgSpeed {
			c.minAvgSpeed = avg
			c.slowest = rec
		}
	}
	if start.Before(c.firstStart) {
		c.first = rec
		c.firstStart = start
	}
}

// addLocation tallies the city name when present, otherwise the grid cell
// of the start coordinate.
func (a *aggregate) addLocation(rec *models.ActivityRecord) {
	if city := strings.TrimSpace(rec.City); city != "" {
		if _, ok := a.cities[rec.City]; !ok {
			a.cityOrder = append(a.cityOrder, rec.City)
		}
		a.cities[rec.City]++
		return
	}
	lat, lng, ok := rec.StartCoords()
	if !ok {
		return
	}
	cell := gridCell{
		lat: int(math.Round(lat * coordGridPerDeg)),
		lng: int(math.Round(lng * coordGridPerDeg)),
	}
	c, ok := a.clusters[cell]
	if !ok {
		c = &coordCluster{}
		a.clusters[cell] = c
		a.clusterOrder = append(a.clusterOrder, c)
	}
	c.add(lat, lng)
}

// localDate returns the calendar day of start in the record's timezone, or
// the UTC day when the timezone is absent or unknown.
func (a *aggregate) localDate(start time.Time, tz string) civilDate {
	if loc := a.zone(tz); loc != nil {
		start = start.In(loc)
	}
	y, m, d := start.Date()
	return civilDate{y: y, m: int(m), d: d}
}

func (a *aggregate) zone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, ok := a.zones[tz]
	if ok {
		return loc
	}
	name := zoneName(tz)
	loc, err := time.LoadLocation(name)
	if err != nil || name == "Local" {
		loc = nil
	}
	a.zones[tz] = loc
	return loc
}

// zoneName strips a Strava-style "(GMT-08:00) " prefix from a timezone.
func zoneName(tz string) string {
	tz = strings.TrimSpace(tz)
	if i := strings.LastIndexByte(tz, ' '); i >= 0 {
		tz = tz[i+1:]
	}
	return tz
}

func (a *aggregate) activeWeekList() []calendar.Week {
	weeks := make([]calendar.Week, 0, len(a.activeWeeks))
	for w := range a.activeWeeks {
		weeks = append(weeks, w)
	}
	return weeks
}
