// ABOUTME: HTTP handlers for users, plans, daily records, goals and weather.
// ABOUTME: Decode the request, call the hydration service, write JSON.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/harperreed/hydration/internal/daily"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/weather"

	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 50

type registerRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
}

type loginRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type loginResponse struct {
	User  *models.User          `json:"user"`
	Logs  []*models.LogEntry    `json:"logs"`
	Daily []*models.DailyRecord `json:"daily"`
}

type planRequest struct {
	Email   string              `json:"email"`
	Date    string              `json:"date"`
	Input   models.SessionInput `json:"input"`
	Weather *models.Weather     `json:"weather"`
	Lat     *float64            `json:"lat"`
	Lon     *float64            `json:"lon"`
}

type planResponse struct {
	Log      *models.LogEntry `json:"log"`
	Schedule []engine.Sip     `json:"schedule"`
	Status   engine.Status    `json:"status"`
}

type intakeRequest struct {
	Email         string   `json:"email"`
	TS            int64    `json:"ts"`
	ActualIntakeL *float64 `json:"actualIntakeL"`
}

type dailyRequest struct {
	Email string             `json:"email"`
	Entry models.DailyRecord `json:"entry"`
}

type urineRequest struct {
	Email      string  `json:"email"`
	Date       string  `json:"date"`
	Level      float64 `json:"level"`
	RecordedAt string  `json:"recordedAt"`
}

type waterRequest struct {
	Email      string  `json:"email"`
	Date       string  `json:"date"`
	VolumeL    float64 `json:"volumeL"`
	RecordedAt string  `json:"recordedAt"`
}

type resetRequest struct {
	Email string `json:"email"`
	Date  string `json:"date"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PasswordHash == "" {
		writeError(w, http.StatusBadRequest, "passwordHash is required")
		return
	}

	u, err := s.service.Register(r.Context(), req.Email, req.Name, req.PasswordHash)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, publicUser(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	u, err := s.service.Login(ctx, req.Email, req.PasswordHash)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logs, err := s.service.ListLogs(ctx, u.Email, 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	records, err := s.service.ListDaily(ctx, u.Email, 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		User:  publicUser(u),
		Logs:  nonNilLogs(logs),
		Daily: nonNilRecords(records),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	snapshot := req.Weather
	if snapshot == nil && req.Lat != nil && req.Lon != nil && s.weatherClient != nil && s.weatherClient.Configured() {
		current, err := s.weatherClient.Current(ctx, *req.Lat, *req.Lon)
		if err != nil {
			log.Warnf("plan without weather, lookup failed: %s", err)
		} else {
			snapshot = current
		}
	}

	entry, err := s.service.PlanToday(ctx, req.Email, req.Date, req.Input, snapshot)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Log:      entry,
		Schedule: engine.BuildDrinkSchedule(entry.Input.DurationMin, entry.Plan.DrinkDuring),
		Status:   engine.StatusBadge(entry.Plan.PctBodyMassLoss),
	})
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	logs, err := s.service.ListLogs(r.Context(), r.URL.Query().Get("email"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilLogs(logs))
}

func (s *Server) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ActualIntakeL == nil {
		writeError(w, http.StatusBadRequest, "actualIntakeL is required")
		return
	}

	entry, err := s.service.RecordIntake(r.Context(), req.Email, req.TS, *req.ActualIntakeL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleGetDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec, err := s.service.DailyFor(r.Context(), q.Get("email"), q.Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := s.service.RecordDaily(r.Context(), req.Email, req.Entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLogUrine(w http.ResponseWriter, r *http.Request) {
	var req urineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	at, ok := s.recordedAt(w, req.RecordedAt, req.Date)
	if !ok {
		return
	}

	rec, err := s.service.LogUrine(r.Context(), req.Email, req.Date, req.Level, at)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	var req waterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	at, ok := s.recordedAt(w, req.RecordedAt, req.Date)
	if !ok {
		return
	}

	rec, err := s.service.LogWater(r.Context(), req.Email, req.Date, req.VolumeL, at)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleResetWater(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := s.service.ResetWater(r.Context(), req.Email, req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	goal, err := s.service.Goal(r.Context(), q.Get("email"), q.Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if s.weatherClient == nil {
		writeServiceError(w, r, weather.ErrMissingAPIKey)
		return
	}

	current, err := s.weatherClient.Current(r.Context(), lat, lon)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// recordedAt parses an optional recordedAt field. Empty means now.
func (s *Server) recordedAt(w http.ResponseWriter, value, date string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	if date == "" {
		date = s.service.Today()
	}
	at, err := daily.ParseRecordedAt(value, date, s.service.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return at, true
}

func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

// publicUser strips the password hash from a user before it leaves the server.
func publicUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	return &out
}

func nonNilLogs(logs []*models.LogEntry) []*models.LogEntry {
	if logs == nil {
		return []*models.LogEntry{}
	}
	return logs
}

func nonNilRecords(records []*models.DailyRecord) []*models.DailyRecord {
	if records == nil {
		return []*models.DailyRecord{}
	}
	return records
}
