// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hydration/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportData(t *testing.T, db *DB) *models.LogEntry {
	t.Helper()
	seedUser(t, db, "ada@example.com")

	l := samplePlanLog(time.Now().Add(-time.Hour))
	l.ActualIntakeL = models.Float(0.8)
	if err := db.CreateLog("ada@example.com", l); err != nil {
		t.Fatalf("CreateLog failed: %v", err)
	}

	rec := models.NewDailyRecord(time.Now().Format(models.DateLayout)).
		WithMetric(models.MetricAlcohol, 2.0).
		WithNote("hot day")
	rec.Urine = &models.UrineLog{Entries: []models.UrineSample{{Level: 4, RecordedAt: time.Now().UTC()}}}
	rec.Hydration = &models.HydrationLog{TotalL: 1.25}
	if err := db.PutDaily("ada@example.com", rec); err != nil {
		t.Fatalf("PutDaily failed: %v", err)
	}
	return l
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "hydration" {
		t.Errorf("Expected tool hydration, got %s", export.Tool)
	}
	if len(export.Users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(export.Users))
	}
	if len(export.Users[0].Logs) != 1 || len(export.Users[0].Daily) != 1 {
		t.Errorf("Expected 1 log and 1 daily record, got %d and %d",
			len(export.Users[0].Logs), len(export.Users[0].Daily))
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	db.CreateUser(models.NewUser("ada@example.com").WithPasswordHash("secret"))

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if yamlData["version"] != ExportVersion {
		t.Errorf("Expected version %s, got %v", ExportVersion, yamlData["version"])
	}
	users, ok := yamlData["users"].(map[string]interface{})
	if !ok || users["ada@example.com"] == nil {
		t.Errorf("Expected user keyed by email, got %v", yamlData["users"])
	}
	if strings.Contains(string(data), "secret") {
		t.Error("YAML export leaked the password hash")
	}
}

func TestExportYAMLWithData(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"sessions:", "target_l: 0.9", "actual_l: 0.8", "water_l: 1.25", "note: hot day"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := ExportMarkdown(db, "", nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	for _, want := range []string{"# Hydration Export", "## ada@example.com", "### Sessions", "| 0.90 L | 0.80 L |", "### Daily", "| 1.25 L | 4 | 2 |", "hot day"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	future := time.Now().Add(48 * time.Hour)
	md, err := ExportMarkdown(db, "", &future)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if strings.Contains(md, "hot day") || strings.Contains(md, "| run |") {
		t.Errorf("since filter kept old entries:\n%s", md)
	}
}

func TestExportMarkdownSingleUser(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)
	seedUser(t, db, "bo@example.com")

	md, err := ExportMarkdown(db, "bo@example.com", nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if strings.Contains(md, "ada@example.com") || !strings.Contains(md, "## bo@example.com") {
		t.Errorf("user filter not applied:\n%s", md)
	}
}

func TestExportMarkdownEmptyDB(t *testing.T) {
	db := setupTestDB(t)
	md, err := ExportMarkdown(db, "", nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "# Hydration Export") {
		t.Error("Expected header in empty export")
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	l := seedExportData(t, src)

	raw, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(dst, raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := dst.GetLog("ada@example.com", l.TS)
	if err != nil {
		t.Fatalf("GetLog after import failed: %v", err)
	}
	if got.ActualIntakeL == nil || *got.ActualIntakeL != 0.8 {
		t.Errorf("intake lost on import: %v", got.ActualIntakeL)
	}

	// Importing twice is safe.
	if err := ImportJSON(dst, raw); err != nil {
		t.Fatalf("second ImportJSON failed: %v", err)
	}
	logs, _ := dst.ListLogs("ada@example.com", 0)
	if len(logs) != 1 {
		t.Errorf("expected 1 log after re-import, got %d", len(logs))
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestExportJSONEmpty(t *testing.T) {
	db := setupTestDB(t)
	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(export.Users) != 0 {
		t.Errorf("Expected no users, got %d", len(export.Users))
	}
}
