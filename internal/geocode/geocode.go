// Package geocode resolves coordinates to a place name through a
// Nominatim-compatible reverse geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
)

// ErrNoPlace is returned when the service knows no place at a coordinate.
var ErrNoPlace = errors.New("no place at coordinate")

// Address keys tried in order, from most to least specific.
var placeKeys = []string{"city", "town", "village", "suburb", "hamlet", "county", "state_district"}

const (
	cacheSize = 10_000
	cacheTTL  = 30 * 24 * time.Hour
)

// HTTPClient interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reverse geocodes coordinates. Results, including misses, are cached
// per ~110 m cell so repeated reports do not hit the service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
	logger     *slog.Logger
	cache      *otter.Cache[string, string]

	attempts uint
	delay    time.Duration
}

// NewClient creates a reverse geocoding client. Nominatim's usage policy
// requires an identifying userAgent.
func NewClient(baseURL, userAgent string, httpClient HTTPClient, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
		cache: otter.Must(&otter.Options[string, string]{
			MaximumSize:      cacheSize,
			ExpiryCalculator: otter.ExpiryWriting[string, string](cacheTTL),
		}),
		attempts: 3,
		delay:    time.Second,
	}
}

func cacheKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 3, 64) + "," + strconv.FormatFloat(lng, 'f', 3, 64)
}

type reverseResponse struct {
	Error   string            `json:"error"`
	Name    string            `json:"name"`
	Address map[string]string `json:"address"`
}

// ReverseGeocode returns the most specific place name known at lat/lng.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	key := cacheKey(lat, lng)
	if place, ok := c.cache.GetIfPresent(key); ok {
		if place == "" {
			return "", ErrNoPlace
		}
		return place, nil
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("zoom", "10")
	q.Set("addressdetails", "1")
	apiURL := c.baseURL + "/reverse?" + q.Encode()

	var result reverseResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", c.userAgent)
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					c.logger.Debug("failed to close response body", "error", err)
				}
			}()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d: %s", resp.StatusCode, body))
			}
			result = reverseResponse{}
			if err := json.Unmarshal(body, &result); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to parse geocoding response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying reverse geocode", "attempt", n+1, "lat", lat, "lng", lng, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("reverse geocode %s: %w", key, err)
	}

	place := pickPlace(result)
	c.cache.Set(key, place)
	if place == "" {
		c.logger.Debug("no place at coordinate", "lat", lat, "lng", lng, "error", result.Error)
		return "", ErrNoPlace
	}
	return place, nil
}

func pickPlace(r reverseResponse) string {
	if r.Error != "" {
		return ""
	}
	for _, k := range placeKeys {
		if v := strings.TrimSpace(r.Address[k]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(r.Name)
}
