// main.go - Entry point and dependency injection
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sstent/garmin-wrapped/internal/config"
	"github.com/sstent/garmin-wrapped/internal/database"
	"github.com/sstent/garmin-wrapped/internal/garmin"
	"github.com/sstent/garmin-wrapped/internal/geocode"
	"github.com/sstent/garmin-wrapped/internal/render"
	"github.com/sstent/garmin-wrapped/internal/sync"
	"github.com/sstent/garmin-wrapped/internal/web"
	"github.com/sstent/garmin-wrapped/internal/wrapped"
)

type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	db          *database.SQLiteDB
	cron        *cron.Cron
	server      *http.Server
	garmin      *garmin.Client
	syncService *sync.SyncService
	reviews     *wrapped.Service
}

func main() {
	year := flag.Int("year", 0, "review year (default REVIEW_YEAR or the current year)")
	importDir := flag.String("import", "", "directory of FIT/TCX/GPX files (default IMPORT_DIR)")
	once := flag.Bool("once", false, "sync, print the review and exit")
	flag.Parse()

	cfg, foundEnv, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	if *year > 0 {
		cfg.ReviewYear = *year
	}
	if *importDir != "" {
		cfg.ImportDir = *importDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	if !foundEnv {
		logger.Debug("no .env file found, using system environment variables")
	}

	app := &App{cfg: cfg, logger: logger}
	if err := app.init(); err != nil {
		logger.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		err := app.runOnce(ctx)
		app.close()
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := app.start(ctx); err != nil {
		logger.Error("failed to start", "error", err)
		app.close()
		os.Exit(1)
	}
	<-ctx.Done()
	app.stop()
}

func (app *App) init() error {
	if err := os.MkdirAll(filepath.Dir(app.cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := database.NewSQLiteDB(app.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db

	app.garmin = garmin.NewClient(app.cfg.GarminAPIURL, nil, app.logger.With("component", "garmin"))
	app.syncService = sync.NewSyncService(app.garmin, app.db, app.logger.With("component", "sync"))

	var geocoder wrapped.Geocoder
	if app.cfg.GeocodeEnabled {
		geocoder = geocode.NewClient(app.cfg.GeocoderURL, app.cfg.GeocoderUserAgent, nil, app.logger.With("component", "geocode"))
	}
	app.reviews = wrapped.NewService(app.db, geocoder, app.logger.With("component", "wrapped"))

	handler := web.NewWebHandler(app.db, app.reviews, app.logger.With("component", "web")).WithSyncer(app)
	app.server = &http.Server{
		Addr:              app.cfg.ListenAddr,
		Handler:           web.NewRouter(handler, app.logger.With("component", "http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.cron = cron.New()
	return nil
}

// SyncYear pulls year from Garmin, imports the activity directory and
// rebuilds the year's review.
func (app *App) SyncYear(ctx context.Context, year int) (int, error) {
	stored, syncErr := app.syncService.Sync(ctx, year)
	imported, importErr := app.syncService.ImportDir(ctx, app.cfg.ImportDir)
	app.refresh(ctx, year)
	return stored + imported, errors.Join(syncErr, importErr)
}

// importFiles loads the activity directory and rebuilds year's review, so a
// report cached while the import ran is replaced.
func (app *App) importFiles(ctx context.Context, year int) error {
	_, err := app.syncService.ImportDir(ctx, app.cfg.ImportDir)
	app.refresh(ctx, year)
	return err
}

func (app *App) refresh(ctx context.Context, year int) {
	if _, err := app.reviews.Refresh(ctx, year); err != nil && !errors.Is(err, wrapped.ErrNoActivity) {
		app.logger.Warn("review refresh failed", "year", year, "error", err)
	}
}

func (app *App) runOnce(ctx context.Context) error {
	year := app.cfg.Year(time.Now())
	if _, err := app.SyncYear(ctx, year); err != nil {
		// a partial store still makes a review
		app.logger.Warn("sync incomplete", "year", year, "error", err)
	}
	report, err := app.reviews.Build(ctx, year)
	if errors.Is(err, wrapped.ErrNoActivity) {
		fmt.Printf("No activities recorded in %d.\n", year)
		return nil
	}
	if err != nil {
		return err
	}
	return render.Report(os.Stdout, report)
}

func (app *App) start(ctx context.Context) error {
	_, err := app.cron.AddFunc(app.cfg.SyncSchedule, func() {
		year := app.cfg.Year(time.Now())
		app.logger.Info("starting scheduled sync", "year", year)
		if _, err := app.SyncYear(ctx, year); err != nil {
			app.logger.Error("scheduled sync failed", "year", year, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", app.cfg.SyncSchedule, err)
	}
	app.cron.Start()

	// Fill the store from local files before the first scheduled run
	go func() {
		if err := app.importFiles(ctx, app.cfg.Year(time.Now())); err != nil {
			app.logger.Warn("initial import failed", "error", err)
		}
	}()

	go func() {
		app.logger.Info("server starting", "addr", app.cfg.ListenAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server error", "error", err)
		}
	}()
	return nil
}

func (app *App) stop() {
	app.logger.Info("shutting down")

	<-app.cron.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("server shutdown error", "error", err)
	}

	app.close()
	app.logger.Info("shutdown complete")
}

func (app *App) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("database close error", "error", err)
		}
	}
}
