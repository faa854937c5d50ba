package service_test

import (
	"reflect"
	"testing"

	"daytrack/internal/service"
)

func TestRecordSittingSessionRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	date := "2026-01-10"
	if _, err := service.RecordSittingSession(db, date, 45, []string{"squats", " pushups ", ""}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := service.RecordSittingSession(db, date, 45, nil); err != nil {
		t.Fatalf("record empty: %v", err)
	}

	sessions, err := service.ListSittingSessions(db, date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SitDurationMinutes != 45 {
		t.Errorf("sit duration = %d, want 45", sessions[0].SitDurationMinutes)
	}
	want := []string{"squats", "pushups"}
	if !reflect.DeepEqual(sessions[0].ExercisesCompleted, want) {
		t.Errorf("exercises = %v, want %v (trimmed, blanks dropped)", sessions[0].ExercisesCompleted, want)
	}
	if len(sessions[1].ExercisesCompleted) != 0 {
		t.Errorf("exercises = %v, want none", sessions[1].ExercisesCompleted)
	}
}

func TestRecordSittingSessionRejectsBadDuration(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.RecordSittingSession(db, "2026-01-10", 0, nil); err == nil {
		t.Fatal("zero duration must fail")
	}
}
