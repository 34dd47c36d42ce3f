package database

import (
	"context"
	"errors"
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

var ErrActivityNotFound = errors.New("activity not found")

// Where a stored activity came from.
const (
	SourceGarmin = "garmin"
	SourceFile   = "file"
)

// Activity is a stored activity record plus its bookkeeping columns.
type Activity struct {
	models.ActivityRecord
	Source    string    `json:"source"`
	Filename  string    `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastSync  time.Time `json:"last_sync"`
}

type TypeTotal struct {
	Type     string  `json:"type"`
	Count    int     `json:"count"`
	Distance float64 `json:"distance"`
}

type Stats struct {
	Total  int         `json:"total"`
	Garmin int         `json:"garmin"`
	Files  int         `json:"files"`
	First  string      `json:"first_activity,omitempty"`
	Last   string      `json:"last_activity,omitempty"`
	Years  []int       `json:"years"`
	Types  []TypeTotal `json:"types"`
	Sync   SyncStatus  `json:"sync"`
}

// SyncStatus is the outcome of the most recent sync run.
type SyncStatus struct {
	LastRun  time.Time `json:"last_run"`
	Status   string    `json:"status"`
	Imported int       `json:"imported"`
	Message  string    `json:"message,omitempty"`
}

// Database interface
type Database interface {
	UpsertActivity(ctx context.Context, rec models.ActivityRecord, source, filename string) error
	GetActivity(ctx context.Context, id int64) (*Activity, error)
	ActivityExists(ctx context.Context, id int64) (bool, error)

	// ActivitiesForYear returns the records starting within year (UTC),
	// ordered by start time then id.
	ActivitiesForYear(ctx context.Context, year int) ([]models.ActivityRecord, error)

	FilterActivities(ctx context.Context, filters ActivityFilters) ([]Activity, error)
	GetStats(ctx context.Context) (*Stats, error)

	SetSyncStatus(ctx context.Context, status SyncStatus) error
	GetSyncStatus(ctx context.Context) (*SyncStatus, error)

	Close() error
}

type ActivityFilters struct {
	ActivityType string
	Source       string
	DateFrom     *time.Time
	DateTo       *time.Time
	MinDistance  float64
	MaxDistance  float64
	MinDuration  float64
	MaxDuration  float64
	Limit        int
	Offset       int
	SortBy       string
	SortOrder    string
}
