// ABOUTME: Tests for the HTTP server routes against a temporary SQLite store.
// ABOUTME: Covers users, plans, daily endpoints, weather, metrics and shutdown.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hydration/internal/hydration"
	"github.com/harperreed/hydration/internal/metrics"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/storage"
	"github.com/harperreed/hydration/internal/weather"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testEmail = "ada@example.com"

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

type testEnv struct {
	server  *Server
	router  http.Handler
	metrics *metrics.Manager
}

func newTestEnv(t *testing.T, weatherClient *weather.Client) *testEnv {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "hydration.db"))
	require.NoError(t, err)

	m, reg := metrics.NewTestManagerAndRegistry()
	svc := hydration.NewService(db,
		hydration.WithClock(func() time.Time { return testNow }),
		hydration.WithMetrics(m),
	)
	t.Cleanup(func() {
		svc.Close()
		_ = db.Close()
	})

	s := NewServer(Params{Service: svc, Weather: weatherClient, Metrics: m, Gatherer: reg})
	return &testEnv{server: s, router: s.Router(), metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/ping", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestUnknownPath(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "POST", "/api/users", registerRequest{Email: testEmail, Name: "Ada", PasswordHash: "h1"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	rr = env.do(t, "POST", "/api/users", registerRequest{Email: testEmail, Name: "Ada", PasswordHash: "h1"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, "POST", "/api/users", registerRequest{Email: "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "POST", "/api/daily/water", waterRequest{Email: testEmail, VolumeL: 0.5})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "POST", "/api/auth/login", loginRequest{Email: testEmail, PasswordHash: "h1"})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[loginResponse](t, rr)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Empty(t, resp.Logs)
	require.Len(t, resp.Daily, 1)
	assert.Equal(t, "2026-03-14", resp.Daily[0].Date)

	rr = env.do(t, "POST", "/api/auth/login", loginRequest{Email: testEmail, PasswordHash: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPlanAndRecordIntake(t *testing.T) {
	env := newTestEnv(t, nil)

	input := *models.NewSessionInput("run", 7, 40, 3).WithWeather(30, 60, 5).WithMass(70)
	rr := env.do(t, "POST", "/api/plan", planRequest{Email: testEmail, Input: input})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[planResponse](t, rr)
	require.NotNil(t, resp.Log)
	assert.Equal(t, testNow.UnixMilli(), resp.Log.TS)
	assert.NotEmpty(t, resp.Schedule)
	assert.Equal(t, 40, resp.Schedule[len(resp.Schedule)-1].AtMin)
	assert.NotEmpty(t, resp.Status.Text)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterPlans))

	rr = env.do(t, "POST", "/api/logs/update", intakeRequest{Email: testEmail, TS: resp.Log.TS, ActualIntakeL: models.Float(0.9)})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[models.LogEntry](t, rr)
	require.NotNil(t, updated.ActualIntakeL)
	assert.InDelta(t, 0.9, *updated.ActualIntakeL, 1e-9)

	rr = env.do(t, "POST", "/api/logs/update", intakeRequest{Email: testEmail, TS: resp.Log.TS, ActualIntakeL: models.Float(1)})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, "POST", "/api/logs/update", intakeRequest{Email: testEmail, TS: 42, ActualIntakeL: models.Float(1)})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, "POST", "/api/logs/update", intakeRequest{Email: testEmail, TS: resp.Log.TS})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "GET", "/api/logs?email="+testEmail+"&limit=5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	logs := decode[[]*models.LogEntry](t, rr)
	assert.Len(t, logs, 1)

	rr = env.do(t, "GET", "/api/logs?email="+testEmail+"&limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDailyEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "POST", "/api/daily", dailyRequest{Email: testEmail, Entry: models.DailyRecord{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	entry := *models.NewDailyRecord("2026-03-14").WithMetric(models.MetricAlcohol, 1.0)
	rr = env.do(t, "POST", "/api/daily", dailyRequest{Email: testEmail, Entry: entry})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "POST", "/api/daily/urine", urineRequest{Email: testEmail, Level: 4, RecordedAt: "07:15"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, "POST", "/api/daily/urine", urineRequest{Email: testEmail, Level: 4, RecordedAt: "breakfast"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "POST", "/api/daily/water", waterRequest{Email: testEmail, VolumeL: -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "POST", "/api/daily/water", waterRequest{Email: testEmail, VolumeL: 0.33})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "GET", "/api/daily?email="+testEmail+"&date=2026-03-14", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rec := decode[models.DailyRecord](t, rr)
	assert.InDelta(t, 1.0, rec.MetricFloat(models.MetricAlcohol), 1e-9)
	require.NotNil(t, rec.Urine)
	require.Len(t, rec.Urine.Entries, 1)
	assert.Equal(t, 4, rec.Urine.Entries[0].Level)
	assert.Equal(t, 7, rec.Urine.Entries[0].RecordedAt.In(time.Local).Hour())
	require.NotNil(t, rec.Hydration)
	assert.InDelta(t, 0.33, rec.Hydration.TotalL, 1e-9)

	rr = env.do(t, "POST", "/api/daily/water/reset", resetRequest{Email: testEmail})
	require.Equal(t, http.StatusOK, rr.Code)
	rec = decode[models.DailyRecord](t, rr)
	assert.Zero(t, rec.Hydration.TotalL)

	rr = env.do(t, "GET", "/api/goal?email="+testEmail, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "GET", "/api/daily?email=", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDailyEndpoint_recordedAtFormats(t *testing.T) {
	env := newTestEnv(t, nil)

	body := func(recordedAt string) map[string]any {
		return map[string]any{
			"email": testEmail,
			"entry": map[string]any{
				"date":  "2026-03-14",
				"urine": map[string]any{"entries": []any{map[string]any{"level": 6, "recordedAt": recordedAt}}},
			},
		}
	}

	rr := env.do(t, "POST", "/api/daily", body("07:30"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "POST", "/api/daily", body("2026-03-14T07:30:00Z"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rec := decode[models.DailyRecord](t, rr)
	require.NotNil(t, rec.Urine)
	require.Len(t, rec.Urine.Entries, 1)
	assert.Equal(t, time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC), rec.Urine.Entries[0].RecordedAt.UTC())
}

func TestWeatherEndpoint(t *testing.T) {
	t.Run("no client", func(t *testing.T) {
		env := newTestEnv(t, nil)
		rr := env.do(t, "GET", "/api/weather?lat=1&lon=2", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		env := newTestEnv(t, weather.NewClient("key"))
		rr := env.do(t, "GET", "/api/weather?lat=1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		env := newTestEnv(t, weather.NewClient(""))
		rr := env.do(t, "GET", "/api/weather?lat=1&lon=2", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("upstream", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"location":{"name":"Chicago"},"current":{"temp_c":29.5,"humidity":62,"uv":7,"wind_kph":18}}`)
		}))
		defer upstream.Close()

		client := weather.NewClient("key", weather.WithBaseURL(upstream.URL), weather.WithHTTPClient(upstream.Client()))
		env := newTestEnv(t, client)
		rr := env.do(t, "GET", "/api/weather?lat=41.88&lon=-87.63", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		w := decode[models.Weather](t, rr)
		require.NotNil(t, w.TempC)
		assert.Equal(t, 29.5, *w.TempC)
		assert.Equal(t, "Chicago", w.City)
	})

	t.Run("upstream error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer upstream.Close()

		client := weather.NewClient("key", weather.WithBaseURL(upstream.URL), weather.WithHTTPClient(upstream.Client()))
		env := newTestEnv(t, client)
		rr := env.do(t, "GET", "/api/weather?lat=41.88&lon=-87.63", nil)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	env.do(t, "GET", "/api/ping", nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterRequests.WithLabelValues("GET", "200")))

	rr := env.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "hydration_test_server_request"))
}

func TestServe_gracefulShutdown(t *testing.T) {
	env := newTestEnv(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
