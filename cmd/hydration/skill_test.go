// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, directory creation, and file content.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setSkipConfirm(t *testing.T) {
	t.Helper()
	prev := skillSkipConfirm
	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = prev })
}

// TestSkillInstallCreatesFile runs installSkill against a temporary home.
func TestSkillInstallCreatesFile(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	setSkipConfirm(t)

	if err := installSkill(); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(tmpHome, ".claude", "skills", "hydration", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}

	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	if string(written) != string(embedded) {
		t.Error("Installed skill does not match embedded content")
	}

	info, err := os.Stat(skillPath)
	if err != nil {
		t.Fatalf("Failed to stat skill file: %v", err)
	}
	if mode := info.Mode(); mode&0600 != 0600 {
		t.Errorf("Expected file to be rw for owner, got %v", mode)
	}
}

// TestSkillInstallOverwritesExistingFile verifies that a stale skill file is replaced.
func TestSkillInstallOverwritesExistingFile(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	setSkipConfirm(t)

	skillDir := filepath.Join(tmpHome, ".claude", "skills", "hydration")
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	if err := installSkill(); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	newData, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read new skill file: %v", err)
	}
	if strings.Contains(string(newData), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(string(newData), "name: hydration") {
		t.Error("Expected new content to contain 'name: hydration'")
	}
}

// TestSkillFSReadEmbeddedContent verifies the embedded SKILL.md has frontmatter.
func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{"name: hydration", "description:", "## When to use hydration"} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

// TestSkillEmbeddedContentReferencesTools verifies every MCP tool is documented.
func TestSkillEmbeddedContentReferencesTools(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	expectedTools := []string{
		"mcp__hydration__plan_workout",
		"mcp__hydration__compute_plan",
		"mcp__hydration__log_water",
		"mcp__hydration__log_urine",
		"mcp__hydration__update_daily",
		"mcp__hydration__get_daily",
		"mcp__hydration__list_logs",
		"mcp__hydration__record_intake",
		"mcp__hydration__drink_schedule",
	}

	contentStr := string(content)
	for _, tool := range expectedTools {
		if !strings.Contains(contentStr, tool) {
			t.Errorf("Expected embedded SKILL.md to reference %q", tool)
		}
	}
}

// TestSkillSkipConfirmFlag verifies the flag exists and has correct defaults.
func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}
