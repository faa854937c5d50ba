package timer_test

import (
	"errors"
	"testing"
	"time"

	"daytrack/internal/notify"
	"daytrack/internal/timer"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTimer(t *testing.T, autoRestart bool) (*timer.Timer, *fakeClock, *notify.LogScheduler, *[]recordedCycle) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local)}
	scheduler := notify.NewLogScheduler()
	cycles := &[]recordedCycle{}
	record := func(sitDuration time.Duration, exercises []string) error {
		*cycles = append(*cycles, recordedCycle{sitDuration, exercises})
		return nil
	}
	tm := timer.New(45*time.Minute, 5*time.Minute, scheduler, record,
		timer.WithClock(clock.Now),
		timer.WithAutoRestart(autoRestart),
	)
	return tm, clock, scheduler, cycles
}

type recordedCycle struct {
	sit       time.Duration
	exercises []string
}

func TestTimerFullCycle(t *testing.T) {
	t.Parallel()
	tm, clock, scheduler, cycles := newTestTimer(t, false)

	if tm.Phase() != timer.PhaseIdle {
		t.Fatalf("initial phase = %s, want idle", tm.Phase())
	}

	tm.StartSitting()
	if tm.Phase() != timer.PhaseSitting {
		t.Fatalf("phase = %s, want sitting", tm.Phase())
	}
	if !scheduler.Pending(notify.StandUpID) {
		t.Error("stand-up notification not scheduled")
	}
	if got := tm.Remaining(); got != 45*time.Minute {
		t.Errorf("remaining = %s, want 45m", got)
	}

	clock.Advance(44 * time.Minute)
	if tm.Tick() != timer.PhaseSitting {
		t.Fatal("still one minute left, phase must be sitting")
	}
	if got := tm.Remaining(); got != time.Minute {
		t.Errorf("remaining = %s, want 1m", got)
	}

	clock.Advance(time.Minute)
	if tm.Tick() != timer.PhaseStandDue {
		t.Fatal("expired sit countdown must read as stand_due")
	}
	if got := tm.Remaining(); got != 0 {
		t.Errorf("remaining at stand_due = %s, want 0", got)
	}

	if !tm.AcknowledgeStandDue() {
		t.Fatal("acknowledge must succeed from stand_due")
	}
	if tm.Phase() != timer.PhaseStanding {
		t.Fatalf("phase = %s, want standing", tm.Phase())
	}
	if scheduler.Pending(notify.StandUpID) {
		t.Error("stand-up notification not cancelled on acknowledge")
	}
	if !scheduler.Pending(notify.SitBackID) {
		t.Error("sit-back notification not scheduled")
	}

	clock.Advance(5 * time.Minute)
	restarted, err := tm.CompleteStanding([]string{"squats"})
	if err != nil {
		t.Fatalf("complete standing: %v", err)
	}
	if restarted {
		t.Error("auto-restart disabled, cycle must not restart")
	}
	if tm.Phase() != timer.PhaseIdle {
		t.Fatalf("phase = %s, want idle", tm.Phase())
	}
	if scheduler.Pending(notify.SitBackID) {
		t.Error("sit-back notification not cancelled on completion")
	}
	if len(*cycles) != 1 || (*cycles)[0].sit != 45*time.Minute || len((*cycles)[0].exercises) != 1 {
		t.Errorf("recorded cycles = %+v", *cycles)
	}
}

func TestTimerAutoRestart(t *testing.T) {
	t.Parallel()
	tm, clock, scheduler, cycles := newTestTimer(t, true)

	tm.StartSitting()
	clock.Advance(45 * time.Minute)
	tm.AcknowledgeStandDue()
	clock.Advance(5 * time.Minute)

	restarted, err := tm.CompleteStanding(nil)
	if err != nil {
		t.Fatalf("complete standing: %v", err)
	}
	if !restarted {
		t.Fatal("auto-restart enabled, cycle must restart")
	}
	if tm.Phase() != timer.PhaseSitting {
		t.Fatalf("phase = %s, want sitting after restart", tm.Phase())
	}
	if got := tm.Remaining(); got != 45*time.Minute {
		t.Errorf("remaining after restart = %s, want 45m", got)
	}
	if !scheduler.Pending(notify.StandUpID) {
		t.Error("restart must re-schedule the stand-up notification")
	}
	if len(*cycles) != 1 {
		t.Errorf("recorded cycles = %d, want 1", len(*cycles))
	}
}

func TestTimerMissedTicksStillReachStandDue(t *testing.T) {
	t.Parallel()
	tm, clock, _, _ := newTestTimer(t, false)

	tm.StartSitting()
	// Process slept well past the countdown; the first tick after waking
	// must still observe the transition.
	clock.Advance(3 * time.Hour)
	if tm.Tick() != timer.PhaseStandDue {
		t.Fatal("long sleep must still land on stand_due")
	}
}

func TestTimerCancelClearsNotifications(t *testing.T) {
	t.Parallel()
	tm, clock, scheduler, cycles := newTestTimer(t, false)

	tm.StartSitting()
	tm.CancelSitting()
	if tm.Phase() != timer.PhaseIdle {
		t.Fatalf("phase = %s, want idle after cancel", tm.Phase())
	}
	if scheduler.Pending(notify.StandUpID) {
		t.Error("cancel must clear the stand-up notification")
	}

	tm.StartSitting()
	clock.Advance(45 * time.Minute)
	tm.AcknowledgeStandDue()
	tm.CancelStanding()
	if tm.Phase() != timer.PhaseIdle {
		t.Fatalf("phase = %s, want idle after standing cancel", tm.Phase())
	}
	if scheduler.Pending(notify.SitBackID) {
		t.Error("cancel must clear the sit-back notification")
	}
	if len(*cycles) != 0 {
		t.Errorf("cancelled cycles must not be recorded, got %d", len(*cycles))
	}
}

func TestTimerAcknowledgeOnlyFromStandDue(t *testing.T) {
	t.Parallel()
	tm, _, _, _ := newTestTimer(t, false)

	if tm.AcknowledgeStandDue() {
		t.Error("acknowledge from idle must be a no-op")
	}
	tm.StartSitting()
	if tm.AcknowledgeStandDue() {
		t.Error("acknowledge while still sitting must be a no-op")
	}
}

func TestTimerRecordFailureEndsCycle(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local)}
	wantErr := errors.New("disk full")
	tm := timer.New(45*time.Minute, 5*time.Minute, notify.NewLogScheduler(),
		func(time.Duration, []string) error { return wantErr },
		timer.WithClock(clock.Now),
	)

	tm.StartSitting()
	clock.Advance(45 * time.Minute)
	tm.AcknowledgeStandDue()
	clock.Advance(5 * time.Minute)

	restarted, err := tm.CompleteStanding(nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if restarted {
		t.Error("failed record must not restart the cycle")
	}
	if tm.Phase() != timer.PhaseIdle {
		t.Fatalf("phase = %s, want idle after record failure", tm.Phase())
	}
}
