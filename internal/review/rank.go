package review

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

// rankedCategories orders categories by their ranking metric, largest
// first; equal metrics keep first-seen order.
func rankedCategories(a *aggregate) []*categoryStats {
	ranked := slices.Clone(a.categoryOrder)
	slices.SortStableFunc(ranked, func(x, y *categoryStats) int {
		mx, my := x.metric(), y.metric()
		switch {
		case mx > my:
			return -1
		case mx < my:
			return 1
		}
		return 0
	})
	return ranked
}

func topSports(ranked []*categoryStats) []models.SportRank {
	n := min(len(ranked), topSportsLimit)
	out := make([]models.SportRank, 0, n)
	for _, c := range ranked[:n] {
		byDistance := IsDistanceRanked(c.name)
		display := fmt.Sprintf("%d hrs", int(math.Round(c.duration/3600)))
		if byDistance {
			display = fmt.Sprintf("%d km", int(math.Round(c.distance/1000)))
		}
		out = append(out, models.SportRank{
			Type:         c.name,
			Count:        c.count,
			Distance:     c.distance,
			Duration:     c.duration,
			ByDistance:   byDistance,
			DisplayValue: display,
		})
	}
	return out
}

// newActivity returns the least frequent category; ties go to the one seen first.
func newActivity(a *aggregate) *models.NewActivity {
	var rarest *categoryStats
	for _, c := range a.categoryOrder {
		if rarest == nil || c.count < rarest.count {
			rarest = c
		}
	}
	if rarest == nil {
		return nil
	}
	return &models.NewActivity{
		Type:      rarest.name,
		ID:        rarest.first.ID,
		FirstDate: rarest.first.StartDate,
		Count:     rarest.count,
	}
}

func monthStats(a *aggregate) [12]models.MonthStats {
	var out [12]models.MonthStats
	for i, b := range a.months {
		out[i] = models.MonthStats{
			Month:    time.Month(i + 1).String(),
			Count:    b.count,
			Distance: b.distance,
			Time:     b.duration,
		}
	}
	return out
}

func topMonths(months [12]models.MonthStats) []models.MonthStats {
	sorted := slices.Clone(months[:])
	slices.SortStableFunc(sorted, func(x, y models.MonthStats) int {
		switch {
		case x.Distance > y.Distance:
			return -1
		case x.Distance < y.Distance:
			return 1
		}
		return 0
	})
	return sorted[:topMonthsLimit]
}

// slowestActivity looks only at the top-ranked category. A category done
// once or twice would otherwise show a meaningless drop from its top speed.
func slowestActivity(ranked []*categoryStats) (*categoryStats, float64, bool) {
	if len(ranked) == 0 {
		return nil, 0, false
	}
	top := ranked[0]
	if top.slowest == nil || top.maxSpeed <= 0 || math.IsInf(top.minAvgSpeed, 0) {
		return nil, 0, false
	}
	drop := (top.maxSpeed - top.minAvgSpeed) / top.maxSpeed * 100
	return top, drop, true
}

// paceByCategory reports the average speed of each distance-ranked category,
// in ranking order.
func paceByCategory(ranked []*categoryStats) []models.CategoryPace {
	out := []models.CategoryPace{}
	for _, c := range ranked {
		if !IsDistanceRanked(c.name) || c.distance <= 0 || c.duration <= 0 {
			continue
		}
		speed := c.distance / c.duration
		out = append(out, models.CategoryPace{
			Type:     c.name,
			AvgSpeed: speed,
			Display:  formatPace(c.name, speed),
		})
	}
	return out
}

func formatPace(category string, speed float64) string {
	switch familyOf(category) {
	case familySwimming:
		return formatMinSec(100/speed) + " /100m"
	case familyRunning, familyWalking, familyHiking:
		return formatMinSec(1000/speed) + " /km"
	}
	return fmt.Sprintf("%.1f km/h", speed*3.6)
}

func formatMinSec(seconds float64) string {
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func summarize(rec *models.ActivityRecord) *models.ActivitySummary {
	if rec == nil {
		return nil
	}
	return &models.ActivitySummary{
		ID:         rec.ID,
		Name:       rec.Name,
		Type:       rec.Type,
		StartDate:  rec.StartDate,
		Distance:   rec.Distance,
		MovingTime: rec.MovingTime,
		KudosCount: rec.KudosCount,
		MaxSpeed:   rec.MaxSpeed,
	}
}
