// Package sync fills the activity store from Garmin and from activity files.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sstent/garmin-wrapped/internal/database"
	"github.com/sstent/garmin-wrapped/internal/garmin"
	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/sstent/garmin-wrapped/internal/parser"
)

// ActivitySource lists a year of activities from Garmin.
type ActivitySource interface {
	ActivitiesForYear(ctx context.Context, year int) ([]garmin.GarminActivity, error)
}

// Store is the part of the database sync writes to.
type Store interface {
	UpsertActivity(ctx context.Context, rec models.ActivityRecord, source, filename string) error
	SetSyncStatus(ctx context.Context, status database.SyncStatus) error
}

type SyncService struct {
	garminClient ActivitySource
	db           Store
	logger       *slog.Logger
	now          func() time.Time
}

func NewSyncService(garminClient ActivitySource, db Store, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		garminClient: garminClient,
		db:           db,
		logger:       logger,
		now:          time.Now,
	}
}

// Sync stores every Garmin activity of year. A failure on one activity is
// logged and skipped; the returned count covers the stored ones.
func (s *SyncService) Sync(ctx context.Context, year int) (int, error) {
	startTime := s.now()
	s.logger.Info("starting sync", "year", year)

	activities, err := s.garminClient.ActivitiesForYear(ctx, year)
	if err != nil {
		s.recordStatus(ctx, startTime, 0, err)
		return 0, fmt.Errorf("failed to get activities: %w", err)
	}
	s.logger.Info("found activities on garmin", "year", year, "count", len(activities))

	stored := 0
	for i, activity := range activities {
		if err := ctx.Err(); err != nil {
			s.recordStatus(ctx, startTime, stored, err)
			return stored, err
		}
		rec := activity.Record()
		if err := s.db.UpsertActivity(ctx, rec, database.SourceGarmin, ""); err != nil {
			s.logger.Error("error syncing activity", "activity_id", rec.ID, "index", i, "error", err)
			continue
		}
		stored++
	}

	s.logger.Info("sync completed", "year", year, "stored", stored, "elapsed", time.Since(startTime))
	s.recordStatus(ctx, startTime, stored, nil)
	return stored, nil
}

// ImportDir parses every FIT, TCX and GPX file below dir into the store.
// Unreadable or unparseable files are logged and skipped.
func (s *SyncService) ImportDir(ctx context.Context, dir string) (int, error) {
	imported := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || parser.FileTypeFromName(path) == parser.FileTypeUnknown {
			return nil
		}

		if err := s.importFile(ctx, path); err != nil {
			s.logger.Warn("skipping activity file", "file", path, "error", err)
			return nil
		}
		imported++
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("import directory missing", "dir", dir)
		return 0, nil
	}
	if err != nil {
		return imported, fmt.Errorf("import %s: %w", dir, err)
	}
	s.logger.Info("import completed", "dir", dir, "imported", imported)
	return imported, nil
}

func (s *SyncService) importFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rec, err := parser.ParseData(path, data)
	if err != nil {
		return err
	}
	return s.db.UpsertActivity(ctx, rec, database.SourceFile, filepath.Base(path))
}

func (s *SyncService) recordStatus(ctx context.Context, started time.Time, stored int, syncErr error) {
	status := database.SyncStatus{LastRun: started, Status: "ok", Imported: stored}
	if syncErr != nil {
		status.Status = "error"
		status.Message = syncErr.Error()
	}
	// the caller's context may already be cancelled
	if err := s.db.SetSyncStatus(context.WithoutCancel(ctx), status); err != nil {
		s.logger.Warn("failed to record sync status", "error", err)
	}
}
