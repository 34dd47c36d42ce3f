// Package review turns one user's activity records into a year-in-review
// report. It performs no I/O and keeps no state between calls.
package review

import (
	"math"

	"github.com/sstent/garmin-wrapped/internal/calendar"
	"github.com/sstent/garmin-wrapped/internal/models"
)

// Analyze builds the report for year. It returns nil when no record starts
// within the year. Records are visited once, in input order; that order
// breaks ties wherever the report picks a single activity or category.
func Analyze(records []models.ActivityRecord, year int) *models.Report {
	dated := filterYear(records, year)
	if len(dated) == 0 {
		return nil
	}
	agg := aggregateRecords(dated)
	return assemble(agg, year)
}

func assemble(a *aggregate, year int) *models.Report {
	ranked := rankedCategories(a)
	streak := LongestStreak(a.activeWeekList())
	months := monthStats(a)
	vibe := ClassifyVibe(vibeStats(a, streak))

	r := &models.Report{
		Year:              year,
		TotalActivities:   a.total,
		TotalDistance:     a.distance,
		TotalCalories:     int(math.Round(a.calories)),
		TotalTime:         a.duration,
		TotalKudos:        a.kudos,
		ActiveDays:        len(a.activeDays),
		PercentTimeMoving: round2(a.duration / float64(calendar.HoursInYear(year)*3600) * 100),
		LongestStreak:     streak,
		CommuterCount:     a.commuter,
		Elevation: models.Elevation{
			Total:        a.elevation,
			Everests:     round2(a.elevation / everestMeters),
			EiffelTowers: round2(a.elevation / eiffelTowerMeters),
		},
		Food: models.Food{
			Pizza:   int(a.calories / pizzaSliceKcal),
			Donuts:  int(a.calories / donutKcal),
			Burgers: int(a.calories / burgerKcal),
		},
		Fun: models.FunStats{
			Songs:  int(a.duration / songSeconds),
			Movies: int(a.duration / movieSeconds),
		},
		Olympics: olympics(a),
		Speed: models.Speed{
			Max:             a.maxSpeed,
			FastestActivity: summarize(a.fastest),
		},
		Charts: models.Charts{
			Hourly: a.hourly,
			Daily:  a.daily,
		},
		ShortestActivity:    summarize(a.shortest),
		SpotlightActivity:   summarize(a.spotlight),
		MostLikedActivity:   summarize(a.mostLiked),
		NewActivity:         newActivity(a),
		TopSports:           topSports(ranked),
		PaceByCategory:      paceByCategory(ranked),
		TopMonthsByDistance: topMonths(months),
		Months:              months,
		TopLocation:         resolveLocation(a),
		Vibe:                vibe,
		VibeTrait:           VibeTraits[vibe],
	}
	if a.distance > 0 {
		r.KudosPerKm = round2(float64(a.kudos) / (a.distance / 1000))
	}
	if top, drop, ok := slowestActivity(ranked); ok {
		r.Speed.SlowestActivity = summarize(top.slowest)
		r.Speed.SlowestCategory = top.name
		r.Speed.PercentDrop = round2(drop)
	}
	return r
}

func olympics(a *aggregate) models.Olympics {
	var run, swim float64
	for _, c := range a.categoryOrder {
		switch familyOf(c.name) {
		case familyRunning:
			run += c.distance
		case familySwimming:
			swim += c.distance
		}
	}
	return models.Olympics{
		Sprints:     int(run / sprintMeters),
		PoolLengths: int(swim / poolLengthMeters),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
