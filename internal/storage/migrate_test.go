// ABOUTME: Tests for migrating data between storage backends.
// ABOUTME: Copies between two SQLite databases and checks counts and fields.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/hydration/internal/models"
)

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)
	seedUser(t, src, "bo@example.com")
	if err := src.CreateLog("bo@example.com", samplePlanLog(time.Now())); err != nil {
		t.Fatalf("CreateLog failed: %v", err)
	}

	dst := setupTestDB(t)
	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Users != 2 || summary.Logs != 2 || summary.Daily != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	u, err := dst.GetUser("ada@example.com")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	orig, _ := src.GetUser("ada@example.com")
	if u.PrivateKey != orig.PrivateKey || u.HydrationGoalL != 2.5 {
		t.Errorf("user fields not preserved: %+v", u)
	}

	records, err := dst.ListDaily("ada@example.com", 0)
	if err != nil {
		t.Fatalf("ListDaily failed: %v", err)
	}
	if len(records) != 1 || records[0].MetricFloat(models.MetricAlcohol) != 2 {
		t.Errorf("daily record not preserved: %+v", records)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(setupTestDB(t), setupTestDB(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if *summary != (MigrateSummary{}) {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestMigrateDataConflict(t *testing.T) {
	src := setupTestDB(t)
	seedUser(t, src, "ada@example.com")
	dst := setupTestDB(t)
	seedUser(t, dst, "ada@example.com")

	if _, err := MigrateData(src, dst); err == nil {
		t.Error("expected error migrating into a destination that already has the user")
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	emptyDir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if nonEmpty {
		t.Error("Expected empty directory to return false")
	}

	if err := os.WriteFile(filepath.Join(emptyDir, "test.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	nonEmpty, err = IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if !nonEmpty {
		t.Error("Expected non-empty directory to return true")
	}

	nonEmpty, err = IsDirNonEmpty("/nonexistent/path")
	if err != nil {
		t.Fatalf("IsDirNonEmpty for nonexistent should not error: %v", err)
	}
	if nonEmpty {
		t.Error("Expected non-existent directory to return false")
	}
}
