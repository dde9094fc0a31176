// ABOUTME: Export and import functionality for hydration data.
// ABOUTME: Supports JSON (full backup), YAML and Markdown export formats.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/hydration/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the backup format version written by GetAllData.
const ExportVersion = "1.0"

// ExportData represents the full export format for hydration data.
type ExportData struct {
	Version    string      `json:"version" yaml:"version"`
	ExportedAt time.Time   `json:"exported_at" yaml:"exported_at"`
	Tool       string      `json:"tool" yaml:"tool"`
	Users      []*UserData `json:"users" yaml:"users"`
}

// UserData is one user's profile with everything they own.
type UserData struct {
	User  *models.User          `json:"user" yaml:"user"`
	Logs  []*models.LogEntry    `json:"logs" yaml:"logs"`
	Daily []*models.DailyRecord `json:"daily" yaml:"daily"`
}

// Collect reads every user, log and daily record from r.
func Collect(r Repository) (*ExportData, error) {
	users, err := r.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "hydration",
		Users:      make([]*UserData, 0, len(users)),
	}
	for _, u := range users {
		logs, err := r.ListLogs(u.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("list logs for %s: %w", u.Email, err)
		}
		daily, err := r.ListDaily(u.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("list daily for %s: %w", u.Email, err)
		}
		data.Users = append(data.Users, &UserData{User: u, Logs: logs, Daily: daily})
	}
	return data, nil
}

// Restore writes an export into r. Existing users are updated in place;
// logs already present (same ts) are skipped.
func Restore(r Repository, data *ExportData) error {
	for _, ud := range data.Users {
		if ud == nil || ud.User == nil {
			continue
		}
		if err := r.CreateUser(ud.User); err != nil {
			if !errors.Is(err, ErrUserExists) {
				return fmt.Errorf("import user: %w", err)
			}
			if err := r.UpdateUser(ud.User); err != nil {
				return fmt.Errorf("import user: %w", err)
			}
		}

		email := ud.User.Email
		for _, l := range ud.Logs {
			if _, err := r.GetLog(email, l.TS); err == nil {
				continue
			} else if !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("import log: %w", err)
			}
			if err := r.CreateLog(email, l); err != nil {
				return fmt.Errorf("import log: %w", err)
			}
		}
		for _, rec := range ud.Daily {
			if err := r.PutDaily(email, rec); err != nil {
				return fmt.Errorf("import daily: %w", err)
			}
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return Collect(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return Restore(d, data)
}

// ExportJSON exports all data from r as indented JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports a JSON backup into r.
func ImportJSON(r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&data)
}

// ExportYAML exports all data from r as YAML, grouped per user.
// Password hashes are left out.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string              `yaml:"version"`
		ExportedAt string              `yaml:"exported_at"`
		Tool       string              `yaml:"tool"`
		Users      map[string]yamlUser `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make(map[string]yamlUser, len(data.Users)),
	}

	for _, ud := range data.Users {
		yu := yamlUser{
			Name:           ud.User.Name,
			MassKg:         ud.User.MassKg,
			HydrationGoalL: ud.User.HydrationGoalL,
			Sessions:       make([]yamlSession, 0, len(ud.Logs)),
			Days:           make([]yamlDay, 0, len(ud.Daily)),
		}
		for _, l := range ud.Logs {
			yu.Sessions = append(yu.Sessions, yamlSession{
				At:           l.Time().Format(time.RFC3339),
				Type:         l.Input.WorkoutType,
				RPE:          l.Input.RPE,
				DurationMin:  l.Input.DurationMin,
				TargetL:      l.Plan.TotalTargetL,
				DuringL:      l.Plan.DrinkDuring,
				PostL:        l.Plan.DrinkPost,
				ActualL:      l.ActualIntakeL,
				PctMassLoss:  l.Plan.PctBodyMassLoss,
				WeatherTempC: weatherTemp(l.Weather),
			})
		}
		for _, rec := range ud.Daily {
			yd := yamlDay{Date: rec.Date, Metrics: rec.Metrics, Note: rec.Note}
			if rec.Hydration != nil {
				yd.WaterL = rec.Hydration.TotalL
			}
			if rec.Urine != nil {
				for _, s := range rec.Urine.Entries {
					yd.Urine = append(yd.Urine, s.Level)
				}
			}
			yu.Days = append(yu.Days, yd)
		}
		yamlData.Users[ud.User.Email] = yu
	}

	return yaml.Marshal(yamlData)
}

type yamlUser struct {
	Name           string        `yaml:"name,omitempty"`
	MassKg         *float64      `yaml:"mass_kg,omitempty"`
	HydrationGoalL float64       `yaml:"hydration_goal_l"`
	Sessions       []yamlSession `yaml:"sessions"`
	Days           []yamlDay     `yaml:"days"`
}

type yamlSession struct {
	At           string   `yaml:"at"`
	Type         string   `yaml:"type,omitempty"`
	RPE          int      `yaml:"rpe"`
	DurationMin  int      `yaml:"duration_min"`
	TargetL      float64  `yaml:"target_l"`
	DuringL      float64  `yaml:"during_l"`
	PostL        float64  `yaml:"post_l"`
	ActualL      *float64 `yaml:"actual_l,omitempty"`
	PctMassLoss  *float64 `yaml:"pct_mass_loss,omitempty"`
	WeatherTempC *float64 `yaml:"weather_temp_c,omitempty"`
}

type yamlDay struct {
	Date    string         `yaml:"date"`
	Metrics map[string]any `yaml:"metrics,omitempty"`
	WaterL  float64        `yaml:"water_l,omitempty"`
	Urine   []int          `yaml:"urine,omitempty"`
	Note    *string        `yaml:"note,omitempty"`
}

func weatherTemp(w *models.Weather) *float64 {
	if w == nil {
		return nil
	}
	return w.TempC
}

// ExportMarkdown renders sessions and daily records as Markdown tables.
// email limits the export to one user when non-empty; since drops older entries.
func ExportMarkdown(r Repository, email string, since *time.Time) (string, error) {
	data, err := r.GetAllData()
	if err != nil {
		return "", err
	}

	users := data.Users
	if email != "" {
		users = nil
		for _, ud := range data.Users {
			if ud.User.Email == email {
				users = append(users, ud)
			}
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].User.Email < users[j].User.Email
	})

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Hydration Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, ud := range users {
		sb.WriteString(fmt.Sprintf("## %s\n\n", ud.User.Email))

		sb.WriteString("### Sessions\n\n")
		sb.WriteString("| Date | Type | RPE | Duration | Target | Actual |\n")
		sb.WriteString("|------|------|-----|----------|--------|--------|\n")
		for _, l := range ud.Logs {
			if since != nil && l.Time().Before(*since) {
				continue
			}
			actual := "-"
			if l.ActualIntakeL != nil {
				actual = fmt.Sprintf("%.2f L", *l.ActualIntakeL)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d min | %.2f L | %s |\n",
				l.Time().Format("2006-01-02 15:04"),
				l.Input.WorkoutType, l.Input.RPE, l.Input.DurationMin,
				l.Plan.TotalTargetL, actual))
		}
		sb.WriteString("\n")

		sb.WriteString("### Daily\n\n")
		sb.WriteString("| Date | Water | Urine | Alcohol | Caffeine | Note |\n")
		sb.WriteString("|------|-------|-------|---------|----------|------|\n")
		for _, rec := range ud.Daily {
			if since != nil && rec.Date < since.Format(models.DateLayout) {
				continue
			}
			water := 0.0
			if rec.Hydration != nil {
				water = rec.Hydration.TotalL
			}
			urine := "-"
			if rec.Urine != nil && len(rec.Urine.Entries) > 0 {
				urine = fmt.Sprintf("%d", rec.Urine.Entries[len(rec.Urine.Entries)-1].Level)
			}
			caffeine := 0.0
			if c, ok := rec.CaffeineMetric(); ok {
				caffeine = c.Milligrams()
			}
			note := ""
			if rec.Note != nil {
				note = *rec.Note
			}
			sb.WriteString(fmt.Sprintf("| %s | %.2f L | %s | %g | %g mg | %s |\n",
				rec.Date, water, urine, rec.MetricFloat(models.MetricAlcohol), caffeine, note))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
