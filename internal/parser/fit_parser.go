package parser

import (
	"bytes"
	"fmt"

	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/tormoder/fit"
)

type FITParser struct{}

// Parse reads the first session of a FIT activity file.
func (p *FITParser) Parse(data []byte) (models.ActivityRecord, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return models.ActivityRecord{}, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return models.ActivityRecord{}, fmt.Errorf("failed to get activity from FIT: %w", err)
	}
	if len(activity.Sessions) == 0 || activity.Sessions[0] == nil {
		return models.ActivityRecord{}, ErrNoActivityData
	}

	session := activity.Sessions[0]
	rec := newRecord(session.StartTime)
	rec.Type = fitSportLabel(session.Sport)
	rec.Distance = scaled32(session.TotalDistance, 100)
	rec.MovingTime = scaled32(session.TotalTimerTime, 1000)
	rec.MaxSpeed = scaled16(session.MaxSpeed, 1000)
	rec.Calories = scaled16(session.TotalCalories, 1)
	rec.ElevationGain = scaled16(session.TotalAscent, 1)

	if !session.StartPositionLat.Invalid() && !session.StartPositionLong.Invalid() {
		rec.SetStartCoords(session.StartPositionLat.Degrees(), session.StartPositionLong.Degrees())
	}
	return rec, nil
}

// FIT marks missing integer fields with the all-ones value.
func scaled32(v uint32, scale float64) float64 {
	if v == 0xFFFFFFFF {
		return 0
	}
	return float64(v) / scale
}

func scaled16(v uint16, scale float64) float64 {
	if v == 0xFFFF {
		return 0
	}
	return float64(v) / scale
}

func fitSportLabel(s fit.Sport) string {
	switch s {
	case fit.SportRunning:
		return "Run"
	case fit.SportCycling:
		return "Ride"
	case fit.SportSwimming:
		return "Swim"
	case fit.SportWalking:
		return "Walk"
	case fit.SportHiking:
		return "Hike"
	case fit.SportRowing:
		return "Rowing"
	case fit.SportTraining:
		return "WeightTraining"
	case fit.SportGeneric, fit.SportInvalid:
		return "Workout"
	}
	return s.String()
}
