// ABOUTME: Tests for the weather client against a stub HTTP server.
// ABOUTME: Covers normalization, caching, a missing API key and upstream errors.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/harperreed/hydration/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"location": {"name": "Chicago", "region": "Illinois", "country": "USA"},
	"current": {
		"temp_c": 29.5, "feelslike_c": 31.2, "humidity": 62, "uv": 7,
		"wind_kph": 18, "wind_dir": "SW", "pressure_mb": 1012, "cloud": 25, "vis_km": 16
	}
}`

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "41.88,-87.63", r.URL.Query().Get("q"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCurrent_normalizes(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, sampleResponse)
	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	w, err := c.Current(context.Background(), 41.8781, -87.6298)
	require.NoError(t, err)

	require.NotNil(t, w.TempC)
	assert.Equal(t, 29.5, *w.TempC)
	assert.Equal(t, 62.0, *w.HumidityPct)
	assert.Equal(t, 7.0, *w.UVIndex)
	assert.InDelta(t, 5.0, *w.WindMps, 1e-9)
	assert.Equal(t, "SW", w.WindDir)
	assert.Equal(t, "Chicago", w.City)
	assert.Equal(t, "USA", w.Country)
}

func TestCurrent_cachesResponses(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, sampleResponse)
	m := metrics.NewTestManager()
	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithMetrics(m))

	for i := 0; i < 3; i++ {
		_, err := c.Current(context.Background(), 41.8781, -87.6298)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterWeatherLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterWeatherLookups.WithLabelValues("miss")))
}

func TestCurrent_missingKey(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.Configured())

	_, err := c.Current(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestCurrent_upstreamError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden, `{"error":{"message":"API key disabled"}}`)
	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Current(context.Background(), 41.8781, -87.6298)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.Status)
	assert.Contains(t, upErr.Body, "API key disabled")
}

func TestCurrent_partialPayload(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"current": {"temp_c": 12}}`)
	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	w, err := c.Current(context.Background(), 41.8781, -87.6298)
	require.NoError(t, err)
	assert.Equal(t, 12.0, *w.TempC)
	assert.Nil(t, w.HumidityPct)
	assert.Nil(t, w.WindMps)
	assert.Empty(t, w.City)
}
