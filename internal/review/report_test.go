package review

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/sstent/garmin-wrapped/internal/models"
)

func sampleYear() []models.ActivityRecord {
	return []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-01-13T06:30:00Z", Distance: 5000, MovingTime: 1500, MaxSpeed: 4.5, KudosCount: 3, City: "Leeds"},
		{ID: 2, Type: "Ride", StartDate: "2025-01-18T09:00:00Z", Distance: 40000, MovingTime: 5400, MaxSpeed: 14, ElevationGain: 420, KudosCount: 9},
		{ID: 3, Type: "Yoga", StartDate: "2025-02-02T19:00:00Z", MovingTime: 3600},
		{ID: 4, Type: "Run", StartDate: "2025-02-04T12:15:00Z", Distance: 10000, MovingTime: 3300, MaxSpeed: 5.2, KudosCount: 9, City: "Leeds"},
		{ID: 5, Type: "Swim", StartDate: "2025-03-11T21:00:00Z", Distance: 1500, MovingTime: 2400, Calories: 300},
		{ID: 6, Type: "Ride", StartDate: "2025-06-21T07:45:00Z", Distance: 80000, MovingTime: 11000, MaxSpeed: 16, Kilojoules: 2000, City: "York"},
		{ID: 7, Type: "Run", StartDate: "2024-12-31T23:59:59Z", Distance: 8000, MovingTime: 2800},
		{ID: 8, Type: "Run", StartDate: "not a date", Distance: 8000, MovingTime: 2800},
		{ID: 9, Type: "Hike", StartDate: "2025-12-28T10:00:00Z", Distance: 12000, MovingTime: 14400, ElevationGain: 800},
		{ID: 10, Type: "Run", StartDate: "2026-01-01T00:00:00Z", Distance: 3000, MovingTime: 900},
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if r := Analyze(nil, 2025); r != nil {
		t.Errorf("Analyze(nil) = %+v, want nil", r)
	}
	outside := []models.ActivityRecord{{ID: 1, Type: "Run", StartDate: "2019-05-01T10:00:00Z", Distance: 1000}}
	if r := Analyze(outside, 2025); r != nil {
		t.Errorf("Analyze(no records in year) = %+v, want nil", r)
	}
}

func TestAnalyzeTotalsMatchHistograms(t *testing.T) {
	r := Analyze(sampleYear(), 2025)
	if r == nil {
		t.Fatal("Analyze returned nil")
	}
	if r.TotalActivities != 7 {
		t.Fatalf("TotalActivities = %d, want 7", r.TotalActivities)
	}

	var monthCount int
	var monthDistance float64
	for _, m := range r.Months {
		monthCount += m.Count
		monthDistance += m.Distance
	}
	if monthCount != r.TotalActivities {
		t.Errorf("month counts sum to %d, want %d", monthCount, r.TotalActivities)
	}
	if monthDistance != r.TotalDistance {
		t.Errorf("month distances sum to %v, want %v", monthDistance, r.TotalDistance)
	}

	var hourly, daily int
	for _, n := range r.Charts.Hourly {
		hourly += n
	}
	for _, n := range r.Charts.Daily {
		daily += n
	}
	if hourly != r.TotalActivities || daily != r.TotalActivities {
		t.Errorf("hourly sum %d, daily sum %d, want %d", hourly, daily, r.TotalActivities)
	}
}

func TestAnalyzeTotals(t *testing.T) {
	r := Analyze(sampleYear(), 2025)

	if r.TotalDistance != 148500 {
		t.Errorf("TotalDistance = %v, want 148500", r.TotalDistance)
	}
	if r.TotalTime != 41600 {
		t.Errorf("TotalTime = %v, want 41600", r.TotalTime)
	}
	// run, ride and hike estimated from distance; swim explicit; second ride from kilojoules
	want := 5*60.0 + 40*25.0 + 0 + 10*60.0 + 300 + 2000*kcalPerKilojoule + 12*60.0
	if r.TotalCalories != int(math.Round(want)) {
		t.Errorf("TotalCalories = %d, want %d", r.TotalCalories, int(math.Round(want)))
	}
	if r.TotalKudos != 21 {
		t.Errorf("TotalKudos = %d, want 21", r.TotalKudos)
	}
	if r.ActiveDays != 7 {
		t.Errorf("ActiveDays = %d, want 7", r.ActiveDays)
	}
	if r.Elevation.Total != 1220 {
		t.Errorf("Elevation.Total = %v, want 1220", r.Elevation.Total)
	}
	if r.Speed.Max != 16 || r.Speed.FastestActivity == nil || r.Speed.FastestActivity.ID != 6 {
		t.Errorf("Speed = %+v, want max 16 from activity 6", r.Speed)
	}
	if r.SpotlightActivity == nil || r.SpotlightActivity.ID != 9 {
		t.Errorf("SpotlightActivity = %+v, want activity 9", r.SpotlightActivity)
	}
	// activities 2 and 4 both have 9 kudos; the first one seen wins
	if r.MostLikedActivity == nil || r.MostLikedActivity.ID != 2 {
		t.Errorf("MostLikedActivity = %+v, want activity 2", r.MostLikedActivity)
	}
	if r.ShortestActivity == nil || r.ShortestActivity.ID != 5 {
		t.Errorf("ShortestActivity = %+v, want activity 5", r.ShortestActivity)
	}
	wantPercent := round2(41600.0 / (8760 * 3600) * 100)
	if r.PercentTimeMoving != wantPercent {
		t.Errorf("PercentTimeMoving = %v, want %v", r.PercentTimeMoving, wantPercent)
	}
	if r.TopLocation.Source != models.LocationSourceCity || r.TopLocation.Name != "Leeds" || r.TopLocation.Count != 2 {
		t.Errorf("TopLocation = %+v, want Leeds x2 from city", r.TopLocation)
	}
	if r.Olympics.Sprints != 150 || r.Olympics.PoolLengths != 30 {
		t.Errorf("Olympics = %+v, want 150 sprints and 30 pool lengths", r.Olympics)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	records := sampleYear()
	first := Analyze(records, 2025)
	second := Analyze(records, 2025)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeHistogramBuckets(t *testing.T) {
	records := []models.ActivityRecord{
		// 2025-01-13 is a Monday, 2025-01-19 a Sunday
		{ID: 1, Type: "Run", StartDate: "2025-01-13T06:30:00Z", Distance: 1000, MovingTime: 300},
		{ID: 2, Type: "Run", StartDate: "2025-01-19T22:10:00Z", Distance: 1000, MovingTime: 300},
		{ID: 3, Type: "Run", StartDate: "2025-01-19T12:00:00Z", Distance: 1000, MovingTime: 300},
	}
	r := Analyze(records, 2025)
	if r.Charts.Daily[0] != 1 || r.Charts.Daily[6] != 2 {
		t.Errorf("Daily = %v, want Monday=1 Sunday=2", r.Charts.Daily)
	}
	if r.Charts.Hourly[6] != 1 || r.Charts.Hourly[22] != 1 || r.Charts.Hourly[12] != 1 {
		t.Errorf("Hourly = %v", r.Charts.Hourly)
	}
}

func TestTopMonthsOrderedByDistance(t *testing.T) {
	records := []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-01-15T08:00:00Z", Distance: 1000},
		{ID: 2, Type: "Run", StartDate: "2025-12-25T08:00:00Z", Distance: 2000},
	}
	r := Analyze(records, 2025)
	if len(r.TopMonthsByDistance) != 3 {
		t.Fatalf("TopMonthsByDistance has %d entries, want 3", len(r.TopMonthsByDistance))
	}
	if r.TopMonthsByDistance[0].Month != "December" || r.TopMonthsByDistance[1].Month != "January" {
		t.Errorf("top months = %s, %s; want December, January",
			r.TopMonthsByDistance[0].Month, r.TopMonthsByDistance[1].Month)
	}
	if r.TopMonthsByDistance[2].Distance != 0 {
		t.Errorf("third month distance = %v, want 0", r.TopMonthsByDistance[2].Distance)
	}
}

func TestSlowestActivityComesFromTopCategory(t *testing.T) {
	records := []models.ActivityRecord{
		{ID: 1, Type: "Ride", StartDate: "2025-04-01T08:00:00Z", Distance: 40000, MovingTime: 4000, MaxSpeed: 12},
		{ID: 2, Type: "Ride", StartDate: "2025-04-03T08:00:00Z", Distance: 30000, MovingTime: 3300, MaxSpeed: 11},
		{ID: 3, Type: "Run", StartDate: "2025-04-05T08:00:00Z", Distance: 10000, MovingTime: 3000, MaxSpeed: 8},
		{ID: 4, Type: "Run", StartDate: "2025-04-07T08:00:00Z", Distance: 5000, MovingTime: 2500, MaxSpeed: 6},
	}
	r := Analyze(records, 2025)
	if r.Speed.SlowestActivity == nil {
		t.Fatal("SlowestActivity is nil")
	}
	if r.Speed.SlowestActivity.ID != 2 || r.Speed.SlowestCategory != "Ride" {
		t.Errorf("slowest = activity %d (%s), want activity 2 (Ride)",
			r.Speed.SlowestActivity.ID, r.Speed.SlowestCategory)
	}
	want := round2((12 - 30000.0/3300) / 12 * 100)
	if r.Speed.PercentDrop != want {
		t.Errorf("PercentDrop = %v, want %v", r.Speed.PercentDrop, want)
	}
}

func TestZeroDurationNeverSlowest(t *testing.T) {
	tests := []struct {
		name        string
		records     []models.ActivityRecord
		wantSlowest int64
	}{
		{
			name: "only zero-duration activity",
			records: []models.ActivityRecord{
				{ID: 1, Type: "Run", StartDate: "2025-05-01T08:00:00Z", Distance: 500, MaxSpeed: 4},
			},
		},
		{
			name: "zero-duration activity next to a timed one",
			records: []models.ActivityRecord{
				{ID: 1, Type: "Run", StartDate: "2025-05-01T08:00:00Z", Distance: 500, MaxSpeed: 4},
				{ID: 2, Type: "Run", StartDate: "2025-05-02T08:00:00Z", Distance: 5000, MovingTime: 1500, MaxSpeed: 5},
			},
			wantSlowest: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Analyze(tt.records, 2025)
			if r.ShortestActivity == nil || r.ShortestActivity.ID != 1 {
				t.Errorf("ShortestActivity = %+v, want activity 1", r.ShortestActivity)
			}
			switch {
			case tt.wantSlowest == 0 && r.Speed.SlowestActivity != nil:
				t.Errorf("SlowestActivity = %+v, want nil", r.Speed.SlowestActivity)
			case tt.wantSlowest != 0 && (r.Speed.SlowestActivity == nil || r.Speed.SlowestActivity.ID != tt.wantSlowest):
				t.Errorf("SlowestActivity = %+v, want activity %d", r.Speed.SlowestActivity, tt.wantSlowest)
			}
		})
	}
}

func TestTopSports(t *testing.T) {
	records := []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-02-01T08:00:00Z", Distance: 21400, MovingTime: 7200},
		{ID: 2, Type: "WeightTraining", StartDate: "2025-02-02T08:00:00Z", MovingTime: 5400},
		{ID: 3, Type: "Run", StartDate: "2025-02-03T08:00:00Z", Distance: 10000, MovingTime: 3000},
		{ID: 4, Type: "Yoga", StartDate: "2025-02-04T08:00:00Z", MovingTime: 3600},
	}
	r := Analyze(records, 2025)
	if len(r.TopSports) != 3 {
		t.Fatalf("TopSports has %d entries, want 3", len(r.TopSports))
	}
	want := []struct {
		typ, display string
	}{
		{"Run", "31 km"},
		{"WeightTraining", "2 hrs"},
		{"Yoga", "1 hrs"},
	}
	for i, w := range want {
		if r.TopSports[i].Type != w.typ || r.TopSports[i].DisplayValue != w.display {
			t.Errorf("TopSports[%d] = %s %q, want %s %q", i, r.TopSports[i].Type, r.TopSports[i].DisplayValue, w.typ, w.display)
		}
	}
	if r.NewActivity == nil || r.NewActivity.Type != "WeightTraining" || r.NewActivity.ID != 2 {
		t.Errorf("NewActivity = %+v, want WeightTraining (first rarest) from activity 2", r.NewActivity)
	}
}

func TestNewActivityFirstDate(t *testing.T) {
	records := []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-03-01T08:00:00Z", Distance: 1000},
		{ID: 2, Type: "Kayaking", StartDate: "2025-07-20T08:00:00Z", Distance: 4000},
		{ID: 3, Type: "Kayaking", StartDate: "2025-06-15T08:00:00Z", Distance: 5000},
		{ID: 4, Type: "Run", StartDate: "2025-03-02T08:00:00Z", Distance: 1000},
		{ID: 5, Type: "Run", StartDate: "2025-03-03T08:00:00Z", Distance: 1000},
	}
	r := Analyze(records, 2025)
	if r.NewActivity.Type != "Kayaking" || r.NewActivity.ID != 3 || r.NewActivity.FirstDate != "2025-06-15T08:00:00Z" {
		t.Errorf("NewActivity = %+v, want Kayaking first seen 2025-06-15 (activity 3)", r.NewActivity)
	}
}

func TestPaceByCategory(t *testing.T) {
	records := []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-02-01T08:00:00Z", Distance: 10000, MovingTime: 3000},
		{ID: 2, Type: "Swim", StartDate: "2025-02-02T08:00:00Z", Distance: 1000, MovingTime: 1200},
		{ID: 3, Type: "Ride", StartDate: "2025-02-03T08:00:00Z", Distance: 36000, MovingTime: 3600},
		{ID: 4, Type: "Yoga", StartDate: "2025-02-04T08:00:00Z", MovingTime: 3600},
	}
	r := Analyze(records, 2025)
	want := map[string]string{
		"Ride": "36.0 km/h",
		"Run":  "5:00 /km",
		"Swim": "2:00 /100m",
	}
	if len(r.PaceByCategory) != len(want) {
		t.Fatalf("PaceByCategory = %+v, want %d entries", r.PaceByCategory, len(want))
	}
	for _, p := range r.PaceByCategory {
		if want[p.Type] != p.Display {
			t.Errorf("pace for %s = %q, want %q", p.Type, p.Display, want[p.Type])
		}
	}
	if r.PaceByCategory[0].Type != "Ride" {
		t.Errorf("first pace entry = %s, want Ride (top-ranked)", r.PaceByCategory[0].Type)
	}
}

func TestActiveDaysUseLocalCalendar(t *testing.T) {
	la := "(GMT-08:00) America/Los_Angeles"
	records := []models.ActivityRecord{
		{ID: 1, Type: "Run", StartDate: "2025-03-09T20:00:00Z", Distance: 1000, Timezone: la},
		{ID: 2, Type: "Run", StartDate: "2025-03-10T02:00:00Z", Distance: 1000, Timezone: la},
	}
	if r := Analyze(records, 2025); r.ActiveDays != 1 {
		t.Errorf("ActiveDays with timezone = %d, want 1", r.ActiveDays)
	}

	records[0].Timezone, records[1].Timezone = "", ""
	if r := Analyze(records, 2025); r.ActiveDays != 2 {
		t.Errorf("ActiveDays in UTC = %d, want 2", r.ActiveDays)
	}
}

func TestLongestStreakFromRecords(t *testing.T) {
	var records []models.ActivityRecord
	// one run every Wednesday from Jan 1 to Jun 4 2025: 23 consecutive weeks
	for i, day := range []string{
		"01-01", "01-08", "01-15", "01-22", "01-29", "02-05", "02-12", "02-19", "02-26",
		"03-05", "03-12", "03-19", "03-26", "04-02", "04-09", "04-16", "04-23", "04-30",
		"05-07", "05-14", "05-21", "05-28", "06-04",
	} {
		records = append(records, models.ActivityRecord{
			ID: int64(i + 1), Type: "Run", StartDate: "2025-" + day + "T17:00:00Z", Distance: 5000, MovingTime: 1500,
		})
	}
	r := Analyze(records, 2025)
	if r.LongestStreak != 23 {
		t.Errorf("LongestStreak = %d, want 23", r.LongestStreak)
	}
	if r.Vibe != VibeMachine {
		t.Errorf("Vibe = %q, want %q", r.Vibe, VibeMachine)
	}
	if r.VibeTrait != VibeTraits[VibeMachine] {
		t.Errorf("VibeTrait = %+v, want %+v", r.VibeTrait, VibeTraits[VibeMachine])
	}
}

func TestTimeOfDayCounters(t *testing.T) {
	tests := []struct {
		start                                    string
		moving                                   float64
		morning, lunch, night, weekend, commuter int
	}{
		{"2025-03-03T03:59:00Z", 600, 0, 0, 0, 0, 1},
		{"2025-03-03T04:00:00Z", 600, 1, 0, 0, 0, 1},
		{"2025-03-03T08:59:00Z", 600, 1, 0, 0, 0, 1},
		{"2025-03-03T09:00:00Z", 600, 0, 0, 0, 0, 1},
		{"2025-03-03T10:59:00Z", 600, 0, 0, 0, 0, 1},
		{"2025-03-03T11:00:00Z", 600, 0, 1, 0, 0, 1},
		{"2025-03-03T13:59:00Z", 600, 0, 1, 0, 0, 1},
		{"2025-03-03T14:00:00Z", 600, 0, 0, 0, 0, 1},
		{"2025-03-03T19:59:00Z", 600, 0, 0, 0, 0, 1},
		{"2025-03-03T20:00:00Z", 600, 0, 0, 1, 0, 1},
		{"2025-03-03T23:59:00Z", 600, 0, 0, 1, 0, 1},
		{"2025-03-01T04:00:00Z", 600, 1, 0, 0, 1, 0},
		{"2025-03-02T12:00:00Z", 600, 0, 1, 0, 1, 0},
		{"2025-03-03T10:00:00Z", 300, 0, 0, 0, 0, 0},
		{"2025-03-03T10:00:00Z", 301, 0, 0, 0, 0, 1},
		{"2025-03-03T10:00:00Z", 2699, 0, 0, 0, 0, 1},
		{"2025-03-03T10:00:00Z", 2700, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			records := []models.ActivityRecord{{ID: 1, Type: "Run", StartDate: tt.start, MovingTime: tt.moving}}
			a := aggregateRecords(filterYear(records, 2025))
			got := [5]int{a.morning, a.lunch, a.night, a.weekend, a.commuter}
			want := [5]int{tt.morning, tt.lunch, tt.night, tt.weekend, tt.commuter}
			if got != want {
				t.Errorf("moving %v: [morning lunch night weekend commuter] = %v, want %v", tt.moving, got, want)
			}
		})
	}
}

func TestRelaxationShareGivesZenMaster(t *testing.T) {
	tests := []struct {
		yoga int
		want string
	}{
		{4, VibeZenMaster},
		{3, VibeMover},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var records []models.ActivityRecord
			for i := range 10 {
				rec := models.ActivityRecord{
					ID:         int64(i + 1),
					Type:       "Run",
					StartDate:  fmt.Sprintf("2025-03-%02dT10:00:00Z", 3+i%5),
					Distance:   5000,
					MovingTime: 3600,
				}
				if i < tt.yoga {
					rec.Type = "Yoga"
					rec.Distance = 0
				}
				records = append(records, rec)
			}
			r := Analyze(records, 2025)
			if r == nil {
				t.Fatal("Analyze returned nil")
			}
			if r.Vibe != tt.want {
				t.Errorf("Vibe with %d of 10 yoga = %q, want %q", tt.yoga, r.Vibe, tt.want)
			}
		})
	}
}
