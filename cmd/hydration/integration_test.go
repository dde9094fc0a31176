// ABOUTME: Integration tests for hydration CLI.
// ABOUTME: Builds the binary and runs a full day's workflow against temp dirs.
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binary := filepath.Join(tmpDir, "hydration")

	buildCmd := exec.Command("go", "build", "-o", binary, ".")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	env := append(os.Environ(),
		"HOME="+tmpDir,
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"WEATHER_API_KEY=",
		"NO_COLOR=1",
	)
	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
	expect := func(output, want string) {
		t.Helper()
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	output, err := run("user", "add", "ada@example.com", "--default")
	if err != nil {
		t.Fatalf("Failed to add user: %v\n%s", err, output)
	}
	expect(output, "Created profile ada@example.com")

	output, err = run("urine", "3")
	if err != nil {
		t.Fatalf("Failed to log urine: %v\n%s", err, output)
	}
	expect(output, "Logged urine level 3")

	output, err = run("water", "add", "0.5")
	if err != nil {
		t.Fatalf("Failed to add water: %v\n%s", err, output)
	}
	expect(output, "Added 0.50 L")

	output, err = run("daily", "set", "--caffeine-cups", "1")
	if err != nil {
		t.Fatalf("Failed to set daily: %v\n%s", err, output)
	}
	expect(output, "95 mg")

	output, err = run("plan", "--rpe", "7", "--duration", "60", "--type", "run")
	if err != nil {
		t.Fatalf("Failed to plan: %v\n%s", err, output)
	}
	expect(output, "Saved plan")
	expect(output, "Drink schedule")

	output, err = run("logs", "list")
	if err != nil {
		t.Fatalf("Failed to list logs: %v\n%s", err, output)
	}
	expect(output, "run")
	expect(output, "Unanswered")

	output, err = run("daily", "show")
	if err != nil {
		t.Fatalf("Failed to show daily: %v\n%s", err, output)
	}
	expect(output, "Water")
	expect(output, "Hydrated")
}
