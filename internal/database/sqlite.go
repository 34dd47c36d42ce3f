package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/sstent/garmin-wrapped/internal/review"
)

// Sortable columns for FilterActivities.
var sortColumns = map[string]string{
	"start_time":  "start_time_utc",
	"distance":    "distance",
	"moving_time": "moving_time",
	"elevation":   "elevation_gain",
	"kudos":       "kudos_count",
	"type":        "activity_type",
}

const sqlTimeLayout = "2006-01-02 15:04:05"

type SQLiteDB struct {
	db *sql.DB
}

var _ Database = (*SQLiteDB)(nil)

func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// one writer at a time; sync and web share the handle
	db.SetMaxOpenConns(1)

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		activity_type TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		start_time_utc TEXT,
		distance REAL NOT NULL DEFAULT 0,
		moving_time REAL NOT NULL DEFAULT 0,
		elevation_gain REAL NOT NULL DEFAULT 0,
		calories REAL NOT NULL DEFAULT 0,
		kilojoules REAL NOT NULL DEFAULT 0,
		kudos_count INTEGER NOT NULL DEFAULT 0,
		max_speed REAL NOT NULL DEFAULT 0,
		start_latitude REAL,
		start_longitude REAL,
		city TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT 'garmin',
		filename TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_sync DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time_utc);
	CREATE INDEX IF NOT EXISTS idx_activities_activity_type ON activities(activity_type);

	CREATE TABLE IF NOT EXISTS sync_status (
		id INTEGER PRIMARY KEY DEFAULT 1,
		last_run DATETIME,
		status TEXT NOT NULL DEFAULT 'never',
		imported INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		CONSTRAINT single_row CHECK (id = 1)
	);

	INSERT OR IGNORE INTO sync_status (id) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

const activityColumns = `
	id, name, activity_type, start_date, distance, moving_time, elevation_gain,
	calories, kilojoules, kudos_count, max_speed, start_latitude, start_longitude,
	city, timezone, source, filename, created_at, last_sync`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*Activity, error) {
	var a Activity
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&a.ID, &a.Name, &a.Type, &a.StartDate, &a.Distance, &a.MovingTime, &a.ElevationGain,
		&a.Calories, &a.Kilojoules, &a.KudosCount, &a.MaxSpeed, &lat, &lng,
		&a.City, &a.Timezone, &a.Source, &a.Filename, &a.CreatedAt, &a.LastSync,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		a.SetStartCoords(lat.Float64, lng.Float64)
	}
	return &a, nil
}

// UpsertActivity stores rec under its id, replacing an earlier copy.
// The normalised UTC start is left NULL when start_date cannot be parsed,
// which keeps the row out of year queries.
func (s *SQLiteDB) UpsertActivity(ctx context.Context, rec models.ActivityRecord, source, filename string) error {
	var startUTC sql.NullString
	if t, ok := review.ParseStart(rec.StartDate); ok {
		startUTC = sql.NullString{String: t.Format(sqlTimeLayout), Valid: true}
	}
	var lat, lng sql.NullFloat64
	if la, ln, ok := rec.StartCoords(); ok {
		lat = sql.NullFloat64{Float64: la, Valid: true}
		lng = sql.NullFloat64{Float64: ln, Valid: true}
	}

	query := `
	INSERT INTO activities (
		id, name, activity_type, start_date, start_time_utc, distance, moving_time,
		elevation_gain, calories, kilojoules, kudos_count, max_speed,
		start_latitude, start_longitude, city, timezone, source, filename
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		activity_type = excluded.activity_type,
		start_date = excluded.start_date,
		start_time_utc = excluded.start_time_utc,
		distance = excluded.distance,
		moving_time = excluded.moving_time,
		elevation_gain = excluded.elevation_gain,
		calories = excluded.calories,
		kilojoules = excluded.kilojoules,
		kudos_count = excluded.kudos_count,
		max_speed = excluded.max_speed,
		start_latitude = excluded.start_latitude,
		start_longitude = excluded.start_longitude,
		city = excluded.city,
		timezone = excluded.timezone,
		source = excluded.source,
		filename = excluded.filename,
		last_sync = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Type, rec.StartDate, startUTC, rec.Distance, rec.MovingTime,
		rec.ElevationGain, rec.Calories, rec.Kilojoules, rec.KudosCount, rec.MaxSpeed,
		lat, lng, rec.City, rec.Timezone, source, filename,
	)
	if err != nil {
		return fmt.Errorf("upsert activity %d: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ActivityExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteDB) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SQLiteDB) ActivitiesForYear(ctx context.Context, year int) ([]models.ActivityRecord, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(sqlTimeLayout)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Format(sqlTimeLayout)

	rows, err := s.db.QueryContext(ctx, `
	SELECT `+activityColumns+`
	FROM activities
	WHERE start_time_utc >= ? AND start_time_utc < ?
	ORDER BY start_time_utc, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query year %d: %w", year, err)
	}
	defer rows.Close()

	records := []models.ActivityRecord{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a.ActivityRecord)
	}
	return records, rows.Err()
}

func (s *SQLiteDB) FilterActivities(ctx context.Context, filters ActivityFilters) ([]Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE 1=1`

	var args []any
	var conditions []string

	if filters.ActivityType != "" {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, filters.ActivityType)
	}
	if filters.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filters.Source)
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, "start_time_utc >= ?")
		args = append(args, filters.DateFrom.UTC().Format(sqlTimeLayout))
	}
	if filters.DateTo != nil {
		conditions = append(conditions, "start_time_utc <= ?")
		args = append(args, filters.DateTo.UTC().Format(sqlTimeLayout))
	}
	if filters.MinDistance > 0 {
		conditions = append(conditions, "distance >= ?")
		args = append(args, filters.MinDistance)
	}
	if filters.MaxDistance > 0 {
		conditions = append(conditions, "distance <= ?")
		args = append(args, filters.MaxDistance)
	}
	if filters.MinDuration > 0 {
		conditions = append(conditions, "moving_time >= ?")
		args = append(args, filters.MinDuration)
	}
	if filters.MaxDuration > 0 {
		conditions = append(conditions, "moving_time <= ?")
		args = append(args, filters.MaxDuration)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	orderBy, ok := sortColumns[filters.SortBy]
	if !ok {
		orderBy = sortColumns["start_time"]
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", orderBy, order, order)

	if filters.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(filters.Limit)
		if filters.Offset > 0 {
			query += " OFFSET " + strconv.Itoa(filters.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter activities: %w", err)
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *SQLiteDB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Years: []int{}, Types: []TypeTotal{}}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx, `
	SELECT COUNT(*),
	       COALESCE(SUM(source = 'garmin'), 0),
	       COALESCE(SUM(source = 'file'), 0),
	       MIN(start_time_utc), MAX(start_time_utc)
	FROM activities`).Scan(&stats.Total, &stats.Garmin, &stats.Files, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}
	stats.First, stats.Last = first.String, last.String

	status, err := s.GetSyncStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Sync = *status

	rows, err := s.db.QueryContext(ctx, `
	SELECT DISTINCT CAST(substr(start_time_utc, 1, 4) AS INTEGER)
	FROM activities WHERE start_time_utc IS NOT NULL ORDER BY 1 DESC`)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			rows.Close()
			return nil, err
		}
		stats.Years = append(stats.Years, y)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `
	SELECT activity_type, COUNT(*), SUM(distance)
	FROM activities GROUP BY activity_type ORDER BY COUNT(*) DESC, activity_type`)
	if err != nil {
		return nil, fmt.Errorf("group types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.Type, &t.Count, &t.Distance); err != nil {
			return nil, err
		}
		stats.Types = append(stats.Types, t)
	}
	return stats, rows.Err()
}

func (s *SQLiteDB) SetSyncStatus(ctx context.Context, status SyncStatus) error {
	_, err := s.db.ExecContext(ctx, `
	UPDATE sync_status SET last_run = ?, status = ?, imported = ?, message = ? WHERE id = 1`,
		status.LastRun.UTC().Format(sqlTimeLayout), status.Status, status.Imported, status.Message)
	return err
}

func (s *SQLiteDB) GetSyncStatus(ctx context.Context) (*SyncStatus, error) {
	var status SyncStatus
	var lastRun sql.NullTime
	err := s.db.QueryRowContext(ctx, `
	SELECT last_run, status, imported, message FROM sync_status WHERE id = 1`).
		Scan(&lastRun, &status.Status, &status.Imported, &status.Message)
	if err != nil {
		return nil, fmt.Errorf("read sync status: %w", err)
	}
	status.LastRun = lastRun.Time
	return &status, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
