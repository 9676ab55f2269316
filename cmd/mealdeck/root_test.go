package mealdeck

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	for i := 0; i < 2; i++ {
		if _, err := runCommand(t, "--db", path, "init"); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestSlotListShowsSeededChecklist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	out, err := runCommand(t, "--db", path, "slot", "list")
	if err != nil {
		t.Fatalf("slot list: %v", err)
	}
	for _, name := range []string{"Breakfast", "Lunch", "Dinner"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %q in output, got:\n%s", name, out)
		}
	}
}

func TestToggleAndLogShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	if _, err := runCommand(t, "--db", path, "slot", "toggle", "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	out, err := runCommand(t, "--db", path, "log", "show")
	if err != nil {
		t.Fatalf("log show: %v", err)
	}
	if !strings.Contains(out, "Breakfast") {
		t.Fatalf("expected Breakfast in today's log, got:\n%s", out)
	}
}

func TestDestructiveCommandsRequireConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	if _, err := runCommand(t, "--db", path, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCommand(t, "--db", path, "log", "clear"); err == nil {
		t.Fatalf("expected log clear without --yes to fail")
	}
	if _, err := runCommand(t, "--db", path, "slot", "remove", "1"); err == nil {
		t.Fatalf("expected slot remove without --yes to fail")
	}
}

func TestRecipeListShowsPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	out, err := runCommand(t, "--db", path, "recipe", "list")
	if err != nil {
		t.Fatalf("recipe list: %v", err)
	}
	if !strings.Contains(out, "Grilled Salmon & Quinoa") {
		t.Fatalf("expected preset recipes in output, got:\n%s", out)
	}
}

func TestDoctorCleanOnFreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.db")
	out, err := runCommand(t, "--db", path, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "All clean") {
		t.Fatalf("expected a clean report, got:\n%s", out)
	}
}
