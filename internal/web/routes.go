// Package web serves the activity store and year reviews as a JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sstent/garmin-wrapped/internal/database"
	"github.com/sstent/garmin-wrapped/internal/models"
	"github.com/sstent/garmin-wrapped/internal/wrapped"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// ActivityStore is the read side of the database.
type ActivityStore interface {
	GetActivity(ctx context.Context, id int64) (*database.Activity, error)
	FilterActivities(ctx context.Context, filters database.ActivityFilters) ([]database.Activity, error)
	GetStats(ctx context.Context) (*database.Stats, error)
}

// ReviewBuilder produces the report for a year.
type ReviewBuilder interface {
	Build(ctx context.Context, year int) (*models.Report, error)
}

// Syncer pulls a year of activities and refreshes its report.
type Syncer interface {
	SyncYear(ctx context.Context, year int) (int, error)
}

type WebHandler struct {
	db      ActivityStore
	reviews ReviewBuilder
	syncer  Syncer
	logger  *slog.Logger
}

func NewWebHandler(db ActivityStore, reviews ReviewBuilder, logger *slog.Logger) *WebHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebHandler{
		db:      db,
		reviews: reviews,
		logger:  logger,
	}
}

// WithSyncer enables POST /api/sync/:year.
func (h *WebHandler) WithSyncer(s Syncer) *WebHandler {
	h.syncer = s
	return h
}

func (h *WebHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.GET("/stats", h.Stats)
	api.GET("/activities", h.ActivityList)
	api.GET("/activities/:id", h.ActivityDetail)
	api.GET("/review/:year", h.Review)
	if h.syncer != nil {
		api.POST("/sync/:year", h.Sync)
	}
}

func (h *WebHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebHandler) Stats(c *gin.Context) {
	stats, err := h.db.GetStats(c.Request.Context())
	if err != nil {
		h.fail(c, "get stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WebHandler) ActivityList(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activities, err := h.db.FilterActivities(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list activities", err)
		return
	}
	if activities == nil {
		activities = []database.Activity{}
	}
	c.JSON(http.StatusOK, activities)
}

func (h *WebHandler) ActivityDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	activity, err := h.db.GetActivity(c.Request.Context(), id)
	if errors.Is(err, database.ErrActivityNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	if err != nil {
		h.fail(c, "get activity", err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *WebHandler) Review(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	report, err := h.reviews.Build(c.Request.Context(), year)
	if errors.Is(err, wrapped.ErrNoActivity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no activity"})
		return
	}
	if err != nil {
		h.fail(c, "build review", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *WebHandler) Sync(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	stored, err := h.syncer.SyncYear(c.Request.Context(), year)
	if err != nil {
		h.fail(c, "sync", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "stored": stored})
}

func (h *WebHandler) fail(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", "op", op, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return year, true
}

func parseFilters(c *gin.Context) (database.ActivityFilters, error) {
	f := database.ActivityFilters{
		ActivityType: c.Query("type"),
		Source:       c.Query("source"),
		SortBy:       c.Query("sort"),
		SortOrder:    c.Query("order"),
		Limit:        defaultLimit,
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return f, errors.New("invalid limit")
		}
		f.Limit = min(n, maxLimit)
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid offset")
		}
		f.Offset = n
	}
	for _, d := range []struct {
		key string
		dst **time.Time
		end bool
	}{{"from", &f.DateFrom, false}, {"to", &f.DateTo, true}} {
		v := c.Query(d.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return f, errors.New("invalid " + d.key + " date, want YYYY-MM-DD")
		}
		if d.end {
			t = t.Add(24*time.Hour - time.Second)
		}
		*d.dst = &t
	}
	return f, nil
}
