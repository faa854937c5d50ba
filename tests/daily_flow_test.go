package tests

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFullDayFlow(t *testing.T) {
	binPath := buildDaytrackBinary(t)
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	initDB(t, binPath, dbPath)

	mustRun(t, binPath, dbPath, "day", "init")

	// Log a compliant lunch from the seeded pick list.
	out := mustRun(t, binPath, dbPath, "meal", "log", "chicken breast", "--time", "13:00", "--type", "lunch")
	if !strings.Contains(out, "Logged meal entry") {
		t.Fatalf("unexpected meal log output: %s", out)
	}

	out = mustRun(t, binPath, dbPath, "meal", "list")
	if !strings.Contains(out, "chicken breast") {
		t.Fatalf("meal list missing item: %s", out)
	}
	if !strings.Contains(out, "31.0g protein") {
		t.Fatalf("meal list missing seeded macros: %s", out)
	}

	// Tick off the whole supplement checklist.
	out = mustRun(t, binPath, dbPath, "supplement", "list")
	for _, name := range []string{"Creatine", "Vitamin D", "Magnesium", "Fish Oil", "Water"} {
		if !strings.Contains(out, name) {
			t.Fatalf("checklist missing %s: %s", name, out)
		}
	}
	for _, id := range []string{"1", "2", "3", "4"} {
		mustRun(t, binPath, dbPath, "supplement", "log", id, "--value", "9")
	}
	mustRun(t, binPath, dbPath, "supplement", "log", "5", "--value", "2") // water at the relaxed threshold

	out = mustRun(t, binPath, dbPath, "supplement", "list")
	if strings.Contains(out, " no\n") {
		t.Fatalf("checklist still has unfinished rows: %s", out)
	}

	out = mustRun(t, binPath, dbPath, "day", "status")
	if !strings.Contains(out, "Supplements complete") {
		t.Fatalf("day status missing supplements line: %s", out)
	}

	out = mustRun(t, binPath, dbPath, "day", "streak")
	if !strings.Contains(out, "Combined streak") {
		t.Fatalf("streak output missing combined line: %s", out)
	}
}

func TestWorkoutFlow(t *testing.T) {
	binPath := buildDaytrackBinary(t)
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	initDB(t, binPath, dbPath)

	out := mustRun(t, binPath, dbPath, "workout", "boxing", "start", "--minutes", "25")
	if !strings.Contains(out, "Started boxing session 1") {
		t.Fatalf("unexpected boxing start output: %s", out)
	}

	// One boxing session per day.
	_, stderr, exit := runDaytrack(t, binPath, dbPath, "workout", "boxing", "start")
	if exit == 0 {
		t.Fatal("second boxing start on the same day must fail")
	}
	if !strings.Contains(stderr, "already exists") {
		t.Fatalf("unexpected error: %s", stderr)
	}

	mustRun(t, binPath, dbPath, "workout", "boxing", "done", "1")
	out = mustRun(t, binPath, dbPath, "workout", "boxing", "status")
	if !strings.Contains(out, "completed") {
		t.Fatalf("boxing status not completed: %s", out)
	}

	out = mustRun(t, binPath, dbPath, "workout", "lift", "start", "a")
	for _, name := range []string{"squat", "bench press", "barbell row"} {
		if !strings.Contains(out, name) {
			t.Fatalf("lift start missing %s: %s", name, out)
		}
	}
	mustRun(t, binPath, dbPath, "workout", "lift", "set", "1", "--weight", "50", "--sets", "5")
	mustRun(t, binPath, dbPath, "workout", "lift", "done", "1")

	out = mustRun(t, binPath, dbPath, "workout", "lift", "last", "a")
	if !strings.Contains(out, "50.0") {
		t.Fatalf("last session missing updated weight: %s", out)
	}

	out = mustRun(t, binPath, dbPath, "day", "status")
	if !strings.Contains(out, "Workout complete") || !strings.Contains(out, "yes") {
		t.Fatalf("day status missing completed workout: %s", out)
	}
}

func TestDayCorrections(t *testing.T) {
	binPath := buildDaytrackBinary(t)
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	initDB(t, binPath, dbPath)

	mustRun(t, binPath, dbPath, "meal", "log", "eggs (2)", "--date", "2026-01-10", "--time", "13:00")
	mustRun(t, binPath, dbPath, "day", "move", "--from", "2026-01-10", "--to", "2026-01-11")

	out := mustRun(t, binPath, dbPath, "meal", "list", "--date", "2026-01-11")
	if !strings.Contains(out, "eggs (2)") {
		t.Fatalf("moved entry missing: %s", out)
	}
	out = mustRun(t, binPath, dbPath, "meal", "list", "--date", "2026-01-10")
	if !strings.Contains(out, "No meal entries") {
		t.Fatalf("source date not empty after move: %s", out)
	}

	// Moving onto occupied data refuses.
	mustRun(t, binPath, dbPath, "meal", "log", "salmon", "--date", "2026-01-12", "--time", "14:00")
	_, stderr, exit := runDaytrack(t, binPath, dbPath, "day", "move", "--from", "2026-01-11", "--to", "2026-01-12")
	if exit == 0 {
		t.Fatal("move onto occupied date must fail")
	}
	if !strings.Contains(stderr, "already has data") {
		t.Fatalf("unexpected move error: %s", stderr)
	}

	mustRun(t, binPath, dbPath, "day", "delete", "2026-01-12")
	out = mustRun(t, binPath, dbPath, "meal", "list", "--date", "2026-01-12")
	if !strings.Contains(out, "No meal entries") {
		t.Fatalf("date not cleared after delete: %s", out)
	}
}

func TestFoodManagement(t *testing.T) {
	binPath := buildDaytrackBinary(t)
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	initDB(t, binPath, dbPath)

	out := mustRun(t, binPath, dbPath, "food", "add", "tofu", "--protein", "10", "--calories", "90")
	if !strings.Contains(out, "Added food") {
		t.Fatalf("unexpected add output: %s", out)
	}
	out = mustRun(t, binPath, dbPath, "food", "list")
	if !strings.Contains(out, "tofu") {
		t.Fatalf("food list missing tofu: %s", out)
	}

	mustRun(t, binPath, dbPath, "food", "archive", "9")
	out = mustRun(t, binPath, dbPath, "food", "list")
	if strings.Contains(out, "tofu") {
		t.Fatalf("archived food still listed: %s", out)
	}
	out = mustRun(t, binPath, dbPath, "food", "list", "--all")
	if !strings.Contains(out, "tofu") {
		t.Fatalf("archived food missing from --all: %s", out)
	}
}

func TestVersionAndSettings(t *testing.T) {
	binPath := buildDaytrackBinary(t)
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	initDB(t, binPath, dbPath)

	out := mustRun(t, binPath, dbPath, "version")
	if !strings.Contains(out, "daytrack version") {
		t.Fatalf("unexpected version output: %s", out)
	}

	mustRun(t, binPath, dbPath, "settings", "set", "theme", "dark")
	out = mustRun(t, binPath, dbPath, "settings", "get", "theme")
	if strings.TrimSpace(out) != "dark" {
		t.Fatalf("settings get = %q, want dark", strings.TrimSpace(out))
	}
	_, _, exit := runDaytrack(t, binPath, dbPath, "settings", "get", "missing")
	if exit == 0 {
		t.Fatal("get of an unset key must fail")
	}
}
