// Package render prints a year-in-review report to a terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/sstent/garmin-wrapped/internal/models"
)

const barWidth = 30

var (
	titleColor  = color.New(color.FgHiMagenta, color.Bold)
	headColor   = color.New(color.FgCyan, color.Bold)
	valueColor  = color.New(color.FgHiWhite, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
	barColor    = color.New(color.FgGreen)
	accentColor = color.New(color.FgYellow)
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Report writes a human-readable rendering of r to w.
func Report(w io.Writer, r *models.Report) error {
	var out strings.Builder

	title := fmt.Sprintf("%s %d Wrapped %s", r.VibeTrait.Icon, r.Year, r.VibeTrait.Icon)
	out.WriteString(titleColor.Sprint(title) + "\n")
	out.WriteString(strings.Repeat("─", 50) + "\n")
	fmt.Fprintf(&out, "Your vibe: %s  %s\n\n", accentColor.Sprint(r.Vibe), mutedColor.Sprint(r.VibeTrait.Description))

	section(&out, "The Numbers")
	stat(&out, "Activities", fmt.Sprintf("%d", r.TotalActivities))
	stat(&out, "Distance", fmt.Sprintf("%.1f km", r.TotalDistance/1000))
	stat(&out, "Moving time", formatHours(r.TotalTime))
	stat(&out, "Active days", fmt.Sprintf("%d", r.ActiveDays))
	stat(&out, "Longest streak", fmt.Sprintf("%d weeks", r.LongestStreak))
	stat(&out, "Time moving", fmt.Sprintf("%.2f%% of the year", r.PercentTimeMoving))
	stat(&out, "Calories", fmt.Sprintf("%d kcal (%d pizza slices)", r.TotalCalories, r.Food.Pizza))
	stat(&out, "Climbing", fmt.Sprintf("%.0f m (%.2f Everests)", r.Elevation.Total, r.Elevation.Everests))
	stat(&out, "Kudos", fmt.Sprintf("%d (%.2f per km)", r.TotalKudos, r.KudosPerKm))
	if r.CommuterCount > 0 {
		stat(&out, "Commute-sized", fmt.Sprintf("%d activities", r.CommuterCount))
	}
	stat(&out, "Top location", fmt.Sprintf("%s (%d)", r.TopLocation.Name, r.TopLocation.Count))
	out.WriteString("\n")

	if len(r.TopSports) > 0 {
		section(&out, "Top Sports")
		for i, s := range r.TopSports {
			fmt.Fprintf(&out, "  %d. %-18s %s  %s\n", i+1, s.Type, valueColor.Sprint(s.DisplayValue),
				mutedColor.Sprintf("%d activities", s.Count))
		}
		out.WriteString("\n")
	}

	if len(r.PaceByCategory) > 0 {
		section(&out, "Pace")
		for _, p := range r.PaceByCategory {
			stat(&out, p.Type, p.Display)
		}
		out.WriteString("\n")
	}

	section(&out, "Highlights")
	highlight(&out, "Spotlight", r.SpotlightActivity)
	highlight(&out, "Most liked", r.MostLikedActivity)
	highlight(&out, "Fastest", r.Speed.FastestActivity)
	highlight(&out, "Shortest", r.ShortestActivity)
	if r.Speed.SlowestActivity != nil {
		highlight(&out, "Slowest "+r.Speed.SlowestCategory, r.Speed.SlowestActivity)
		fmt.Fprintf(&out, "  %s\n", mutedColor.Sprintf("%.2f%% below your top speed", r.Speed.PercentDrop))
	}
	if r.NewActivity != nil {
		stat(&out, "Rarest", fmt.Sprintf("%s (%d)", r.NewActivity.Type, r.NewActivity.Count))
	}
	out.WriteString("\n")

	section(&out, "Months")
	var months []int
	var labels []string
	for _, m := range r.Months {
		months = append(months, int(math.Round(m.Distance/1000)))
		labels = append(labels, m.Month[:3])
	}
	bars(&out, labels, months, "km")
	out.WriteString("\n")

	section(&out, "Weekdays")
	bars(&out, weekdays[:], r.Charts.Daily[:], "")
	out.WriteString("\n")

	section(&out, "Hours (UTC)")
	var hours []string
	for h := range 24 {
		hours = append(hours, fmt.Sprintf("%02d", h))
	}
	bars(&out, hours, r.Charts.Hourly[:], "")

	_, err := io.WriteString(w, out.String())
	return err
}

func section(out *strings.Builder, name string) {
	out.WriteString(headColor.Sprint(name) + "\n")
}

func stat(out *strings.Builder, label, value string) {
	fmt.Fprintf(out, "  %-18s %s\n", label, valueColor.Sprint(value))
}

func highlight(out *strings.Builder, label string, a *models.ActivitySummary) {
	if a == nil {
		return
	}
	name := a.Name
	if name == "" {
		name = a.Type
	}
	day := a.StartDate
	if len(day) >= 10 {
		day = day[:10]
	}
	stat(out, label, fmt.Sprintf("%s, %s, %.1f km in %s", name, day, a.Distance/1000, formatHours(a.MovingTime)))
}

// bars draws one horizontal bar per label, scaled to the largest value.
func bars(out *strings.Builder, labels []string, values []int, unit string) {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	for i, v := range values {
		n := 0
		if peak > 0 {
			n = int(math.Round(float64(v) / float64(peak) * barWidth))
		}
		suffix := fmt.Sprintf("%d", v)
		if unit != "" {
			suffix += " " + unit
		}
		fmt.Fprintf(out, "  %-4s %s %s\n", labels[i], barColor.Sprint(strings.Repeat("█", n)), mutedColor.Sprint(suffix))
	}
}

func formatHours(seconds float64) string {
	total := int(math.Round(seconds / 60))
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
