package parser

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

type TCXParser struct{}

type tcxDatabase struct {
	Activities struct {
		Activity []tcxActivity `xml:"Activity"`
	} `xml:"Activities"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Notes string   `xml:"Notes"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	StartTime        string          `xml:"StartTime,attr"`
	TotalTimeSeconds float64         `xml:"TotalTimeSeconds"`
	DistanceMeters   float64         `xml:"DistanceMeters"`
	Calories         float64         `xml:"Calories"`
	MaximumSpeed     float64         `xml:"MaximumSpeed"`
	Trackpoints      []tcxTrackpoint `xml:"Track>Trackpoint"`
}

type tcxTrackpoint struct {
	Time     string   `xml:"Time"`
	Altitude *float64 `xml:"AltitudeMeters"`
	Position *struct {
		Lat float64 `xml:"LatitudeDegrees"`
		Lng float64 `xml:"LongitudeDegrees"`
	} `xml:"Position"`
}

// Parse sums the laps of the first activity in a TCX document.
func (p *TCXParser) Parse(data []byte) (models.ActivityRecord, error) {
	var tcx tcxDatabase
	if err := xml.Unmarshal(data, &tcx); err != nil {
		return models.ActivityRecord{}, fmt.Errorf("failed to decode TCX: %w", err)
	}
	if len(tcx.Activities.Activity) == 0 || len(tcx.Activities.Activity[0].Laps) == 0 {
		return models.ActivityRecord{}, ErrNoActivityData
	}

	activity := tcx.Activities.Activity[0]
	startText := activity.Laps[0].StartTime
	if startText == "" {
		startText = activity.ID
	}
	start, err := time.Parse(time.RFC3339, startText)
	if err != nil {
		return models.ActivityRecord{}, fmt.Errorf("bad TCX start time %q: %w", startText, err)
	}

	rec := newRecord(start)
	rec.Name = activity.Notes
	rec.Type = tcxSportLabel(activity.Sport)

	var climb climbCounter
	for _, lap := range activity.Laps {
		rec.MovingTime += lap.TotalTimeSeconds
		rec.Distance += lap.DistanceMeters
		rec.Calories += lap.Calories
		rec.MaxSpeed = max(rec.MaxSpeed, lap.MaximumSpeed)

		for _, tp := range lap.Trackpoints {
			if tp.Position != nil && rec.StartLatLng == nil {
				rec.SetStartCoords(tp.Position.Lat, tp.Position.Lng)
			}
			if tp.Altitude != nil {
				climb.add(*tp.Altitude)
			}
		}
	}
	rec.ElevationGain = climb.gain
	return rec, nil
}

func tcxSportLabel(sport string) string {
	switch sport {
	case "Running":
		return "Run"
	case "Biking":
		return "Ride"
	case "Swimming":
		return "Swim"
	default:
		return "Workout"
	}
}

// climbCounter sums positive elevation changes.
type climbCounter struct {
	last float64
	seen bool
	gain float64
}

func (c *climbCounter) add(ele float64) {
	if c.seen && ele > c.last {
		c.gain += ele - c.last
	}
	c.last, c.seen = ele, true
}
