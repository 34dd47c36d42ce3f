// Package garmin talks to the Garmin Connect API wrapper service.
package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/sstent/garmin-wrapped/internal/review"
)

const (
	// PageSize is the number of activities requested per page.
	PageSize = 200
	// MaxPages bounds a year fetch at PageSize*MaxPages activities.
	MaxPages = 20
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger

	attempts uint
	delay    time.Duration
}

type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

type GarminActivity struct {
	ActivityID     int64        `json:"activityId"`
	ActivityName   string       `json:"activityName"`
	StartTimeLocal string       `json:"startTimeLocal"`
	StartTimeGMT   string       `json:"startTimeGMT"`
	ActivityType   ActivityType `json:"activityType"`
	Distance       float64      `json:"distance"`
	Duration       float64      `json:"duration"`
	MovingDuration float64      `json:"movingDuration"`
	ElevationGain  float64      `json:"elevationGain"`
	Calories       float64      `json:"calories"`
	MaxSpeed       float64      `json:"maxSpeed"`
	StartLatitude  float64      `json:"startLatitude"`
	StartLongitude float64      `json:"startLongitude"`
	LocationName   string       `json:"locationName"`
}

// NewClient creates a new Garmin API client. A nil httpClient gets a 30s
// timeout client; a nil logger uses slog.Default.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		attempts:   5,
		delay:      time.Second,
	}
}

// Record converts the activity to an engine record. Start times are taken
// from the GMT field; the local field is only a fallback since it carries no
// offset.
func (a GarminActivity) Record() models.ActivityRecord {
	start := a.StartTimeGMT
	if start == "" {
		start = a.StartTimeLocal
	}
	if t, ok := review.ParseStart(start); ok {
		start = t.Format(time.RFC3339)
	}
	moving := a.MovingDuration
	if moving <= 0 {
		moving = a.Duration
	}
	rec := models.ActivityRecord{
		ID:            a.ActivityID,
		Name:          a.ActivityName,
		Type:          a.ActivityType.TypeKey,
		StartDate:     start,
		Distance:      a.Distance,
		MovingTime:    moving,
		ElevationGain: a.ElevationGain,
		Calories:      a.Calories,
		MaxSpeed:      a.MaxSpeed,
		City:          a.LocationName,
	}
	if a.StartLatitude != 0 || a.StartLongitude != 0 {
		rec.SetStartCoords(a.StartLatitude, a.StartLongitude)
	}
	return rec
}

// GetActivities retrieves one page of activities, newest first.
func (c *Client) GetActivities(ctx context.Context, start, limit int) ([]GarminActivity, error) {
	url := fmt.Sprintf("%s/activities?start=%d&limit=%d", c.baseURL, start, limit)

	var activities []GarminActivity
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
				err := fmt.Errorf("API returned status %d: %s", resp.StatusCode, body)
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
					return err
				}
				return retry.Unrecoverable(err)
			}

			activities = nil
			if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode activities: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying garmin request", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// ActivitiesForYear pages backwards through the activity list until it
// reaches activities older than year, collecting those that start within it.
func (c *Client) ActivitiesForYear(ctx context.Context, year int) ([]GarminActivity, error) {
	var out []GarminActivity
	for page := 0; page < MaxPages; page++ {
		batch, err := c.GetActivities(ctx, page*PageSize, PageSize)
		if err != nil {
			return out, fmt.Errorf("fetch page %d: %w", page, err)
		}

		older := false
		for _, a := range batch {
			y, ok := startYear(a)
			switch {
			case !ok:
				c.logger.Warn("skipping activity with unreadable start", "activity_id", a.ActivityID)
			case y == year:
				out = append(out, a)
			case y < year:
				older = true
			}
		}
		c.logger.Debug("fetched activity page", "page", page, "count", len(batch), "kept", len(out))

		if older || len(batch) < PageSize {
			return out, nil
		}
	}
	c.logger.Warn("activity page limit reached", "year", year, "pages", MaxPages)
	return out, nil
}

func startYear(a GarminActivity) (int, bool) {
	rec := a.Record()
	t, ok := review.ParseStart(rec.StartDate)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}
