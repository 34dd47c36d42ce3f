// Package wrapped produces year-in-review reports from the activity store.
package wrapped

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/sstent/garmin-wrapped/internal/review"
)

// ErrNoActivity is returned for a year without any activity.
var ErrNoActivity = errors.New("no activity")

const reportTTL = 24 * time.Hour

// RecordStore supplies the records of one year.
type RecordStore interface {
	ActivitiesForYear(ctx context.Context, year int) ([]models.ActivityRecord, error)
}

// Geocoder names a coordinate.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

type Service struct {
	store    RecordStore
	geocoder Geocoder
	logger   *slog.Logger
	reports  *otter.Cache[int, *models.Report]
}

// NewService creates a report service. geocoder may be nil, in which case
// coordinate-derived locations keep their placeholder name.
func NewService(store RecordStore, geocoder Geocoder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		geocoder: geocoder,
		logger:   logger,
		reports: otter.Must(&otter.Options[int, *models.Report]{
			MaximumSize:      64,
			ExpiryCalculator: otter.ExpiryWriting[int, *models.Report](reportTTL),
		}),
	}
}

// Build returns the report for year, computing it on a cache miss.
func (s *Service) Build(ctx context.Context, year int) (*models.Report, error) {
	if r, ok := s.Cached(year); ok {
		return r, nil
	}
	return s.Refresh(ctx, year)
}

// Cached returns a previously built report without touching the store.
func (s *Service) Cached(year int) (*models.Report, bool) {
	return s.reports.GetIfPresent(year)
}

// Refresh recomputes the report for year and replaces any cached copy.
// A year without activity evicts the cached report.
func (s *Service) Refresh(ctx context.Context, year int) (*models.Report, error) {
	start := time.Now()
	records, err := s.store.ActivitiesForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load %d activities: %w", year, err)
	}

	report := review.Analyze(records, year)
	if report == nil {
		s.reports.Invalidate(year)
		return nil, ErrNoActivity
	}
	s.nameLocation(ctx, &report.TopLocation)

	s.reports.Set(year, report)
	s.logger.Info("built year review",
		"year", year,
		"activities", report.TotalActivities,
		"vibe", report.Vibe,
		"elapsed", time.Since(start))
	return report, nil
}

// nameLocation replaces the placeholder name of a coordinate cluster. A
// failed lookup leaves the placeholder in place.
func (s *Service) nameLocation(ctx context.Context, loc *models.Location) {
	if !loc.NeedsGeocoding || s.geocoder == nil {
		return
	}
	name, err := s.geocoder.ReverseGeocode(ctx, loc.Lat, loc.Lng)
	if err != nil {
		s.logger.Warn("could not name top location", "lat", loc.Lat, "lng", loc.Lng, "error", err)
		return
	}
	loc.Name = name
	loc.NeedsGeocoding = false
}
