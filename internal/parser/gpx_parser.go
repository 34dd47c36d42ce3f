package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

type GPXParser struct{}

type gpxDocument struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Type     string       `xml:"type"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      string   `xml:"time"`
}

// Parse derives distance, time and climb from the track points of every
// track in a GPX document. Segments are not joined: the gap between two
// segments adds no distance.
func (p *GPXParser) Parse(data []byte) (models.ActivityRecord, error) {
	var gpx gpxDocument
	if err := xml.Unmarshal(data, &gpx); err != nil {
		return models.ActivityRecord{}, fmt.Errorf("failed to decode GPX: %w", err)
	}

	var (
		start, end time.Time
		distance   float64
		maxSpeed   float64
		climb      climbCounter
		first      *gpxPoint
	)
	for _, track := range gpx.Tracks {
		for _, segment := range track.Segments {
			var prev *gpxPoint
			var prevTime time.Time
			for i := range segment.Points {
				point := &segment.Points[i]
				if first == nil {
					first = point
				}
				t, timeErr := time.Parse(time.RFC3339, point.Time)
				if timeErr == nil {
					if start.IsZero() {
						start = t
					}
					end = t
				}
				if point.Elevation != nil {
					climb.add(*point.Elevation)
				}
				if prev != nil {
					d := calculateDistance(prev.Lat, prev.Lon, point.Lat, point.Lon)
					distance += d
					if timeErr == nil && !prevTime.IsZero() {
						if dt := t.Sub(prevTime).Seconds(); dt > 0 {
							maxSpeed = max(maxSpeed, d/dt)
						}
					}
				}
				prev = point
				if timeErr == nil {
					prevTime = t
				} else {
					prevTime = time.Time{}
				}
			}
		}
	}
	if first == nil || start.IsZero() {
		return models.ActivityRecord{}, ErrNoActivityData
	}

	rec := newRecord(start)
	rec.Name = gpx.Tracks[0].Name
	rec.Type = gpxTypeLabel(gpx.Tracks[0].Type)
	rec.Distance = distance
	rec.MovingTime = end.Sub(start).Seconds()
	rec.MaxSpeed = maxSpeed
	rec.ElevationGain = climb.gain
	rec.SetStartCoords(first.Lat, first.Lon)
	return rec, nil
}

// gpxTypeLabel keeps the free-text track type (Strava writes "running",
// Garmin Connect "hiking"); an empty type becomes a generic workout.
func gpxTypeLabel(t string) string {
	if t == "" {
		return "Workout"
	}
	return t
}

// Haversine formula for distance calculation
func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // Earth's radius in meters

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
