// ABOUTME: WeatherAPI.com client returning normalized current conditions.
// ABOUTME: Raw responses are cached in freecache per rounded coordinate pair.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/harperreed/hydration/internal/metrics"
	"github.com/harperreed/hydration/internal/models"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the WeatherAPI.com v1 endpoint.
	DefaultBaseURL = "https://api.weatherapi.com/v1"

	cacheExpireSeconds = 30 * 60
	cacheSize          = 8 * 1024 * 1024
	requestTimeout     = 10 * time.Second
)

// ErrMissingAPIKey is returned when no WeatherAPI key is configured.
var ErrMissingAPIKey = errors.New("weather API key is not configured")

// UpstreamError carries a non-2xx response from WeatherAPI.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API returned %d: %s", e.Status, e.Body)
}

// Client fetches current conditions.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *freecache.Cache
	metrics    *metrics.Manager
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records lookups on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for apiKey. An empty key is allowed; lookups then
// fail with ErrMissingAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      freecache.NewCache(cacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Current returns the current conditions at lat, lon.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	q := strconv.FormatFloat(lat, 'f', 2, 64) + "," + strconv.FormatFloat(lon, 'f', 2, 64)
	cacheKey := []byte("current::" + q)

	if raw, err := c.cache.Get(cacheKey); err == nil {
		if w, err := decodeCurrent(raw); err == nil {
			log.Tracef("weather for %s served from cache", q)
			c.count("hit")
			return w, nil
		} else {
			log.Errorf("failed to decode cached weather for %s: %s", q, err)
		}
	}
	c.count("miss")

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(q))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.count("error")
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	w, err := decodeCurrent(raw)
	if err != nil {
		c.count("error")
		return nil, err
	}

	if err := c.cache.Set(cacheKey, raw, cacheExpireSeconds); err != nil {
		log.Errorf("failed to cache weather for %s: %s", q, err)
	} else {
		log.Debugf("weather cache set for %s", q)
	}
	return w, nil
}

func (c *Client) count(result string) {
	if c.metrics != nil {
		c.metrics.CounterWeatherLookups.WithLabelValues(result).Inc()
	}
}

// apiResponse is the subset of the WeatherAPI current.json payload we read.
type apiResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC      *float64 `json:"temp_c"`
		FeelslikeC *float64 `json:"feelslike_c"`
		Humidity   *float64 `json:"humidity"`
		UV         *float64 `json:"uv"`
		WindKph    *float64 `json:"wind_kph"`
		WindDir    string   `json:"wind_dir"`
		PressureMb *float64 `json:"pressure_mb"`
		Cloud      *float64 `json:"cloud"`
		VisKm      *float64 `json:"vis_km"`
	} `json:"current"`
}

func decodeCurrent(raw []byte) (*models.Weather, error) {
	var r apiResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("unmarshal weather response: %w", err)
	}

	cur := r.Current
	w := &models.Weather{
		TempC:        cur.TempC,
		FeelslikeC:   cur.FeelslikeC,
		HumidityPct:  cur.Humidity,
		UVIndex:      cur.UV,
		WindKph:      cur.WindKph,
		WindDir:      cur.WindDir,
		PressureMb:   cur.PressureMb,
		CloudPct:     cur.Cloud,
		VisibilityKm: cur.VisKm,
		City:         r.Location.Name,
		Region:       r.Location.Region,
		Country:      r.Location.Country,
	}
	if cur.WindKph != nil {
		w.WindMps = models.Float(*cur.WindKph / 3.6)
	}
	return w, nil
}
