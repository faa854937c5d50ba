package service_test

import (
	"testing"

	"daytrack/internal/model"
	"daytrack/internal/service"
)

func supplementByName(t *testing.T, supplements []model.Supplement, name string) model.Supplement {
	t.Helper()
	for _, s := range supplements {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("supplement %q not found", name)
	return model.Supplement{}
}

func TestLogSupplementClampsToTarget(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	supplements, err := service.ListSupplements(db, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	water := supplementByName(t, supplements, service.WaterName)

	date := "2026-01-10"
	if err := service.LogSupplement(db, water.ID, date, 99); err != nil {
		t.Fatalf("log over target: %v", err)
	}
	logs, err := service.SupplementLogsForDate(db, date)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	for _, l := range logs {
		if l.SupplementID == water.ID && l.Value != water.Target {
			t.Errorf("value = %d, want clamp to target %d", l.Value, water.Target)
		}
	}

	if err := service.LogSupplement(db, water.ID, date, -5); err != nil {
		t.Fatalf("log negative: %v", err)
	}
	logs, _ = service.SupplementLogsForDate(db, date)
	for _, l := range logs {
		if l.SupplementID == water.ID && l.Value != 0 {
			t.Errorf("value = %d, want clamp to 0", l.Value)
		}
	}
}

func TestIncrementSupplementCapsAtTarget(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	supplements, err := service.ListSupplements(db, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	creatine := supplementByName(t, supplements, "Creatine")

	date := "2026-01-10"
	for i := 0; i < 3; i++ {
		value, err := service.IncrementSupplement(db, creatine.ID, date)
		if err != nil {
			t.Fatalf("increment %d: %v", i+1, err)
		}
		if value != creatine.Target {
			if i == 0 && value == 1 {
				continue
			}
			t.Errorf("increment %d = %d, want capped at %d", i+1, value, creatine.Target)
		}
	}
}

func TestLogSupplementUnknownID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.LogSupplement(db, 9999, "2026-01-10", 1); err == nil {
		t.Fatal("unknown supplement id must fail")
	}
}

func TestCompletionThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s    model.Supplement
		want int
	}{
		{model.Supplement{Name: "Water", Target: 4}, 2},
		{model.Supplement{Name: "Water", Target: 1}, 1},
		{model.Supplement{Name: "Creatine", Target: 1}, 1},
		{model.Supplement{Name: "Fish Oil", Target: 2}, 2},
	}
	for _, tc := range cases {
		if got := service.CompletionThreshold(tc.s); got != tc.want {
			t.Errorf("threshold(%s target=%d) = %d, want %d", tc.s.Name, tc.s.Target, got, tc.want)
		}
	}
}

func TestArchivedSupplementLeavesChecklist(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	supplements, err := service.ListSupplements(db, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	before := len(supplements)
	target := supplements[0]

	if err := service.ArchiveSupplement(db, target.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	active, err := service.ListSupplements(db, false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != before-1 {
		t.Errorf("active count = %d, want %d", len(active), before-1)
	}
	all, err := service.ListSupplements(db, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != before {
		t.Errorf("total count = %d, want %d", len(all), before)
	}

	if err := service.UnarchiveSupplement(db, target.ID); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	active, _ = service.ListSupplements(db, false)
	if len(active) != before {
		t.Errorf("active count after unarchive = %d, want %d", len(active), before)
	}
}
