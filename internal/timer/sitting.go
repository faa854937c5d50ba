package timer

import (
	"log"
	"sync"
	"time"

	"daytrack/internal/notify"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSitting  Phase = "sitting"
	PhaseStandDue Phase = "stand_due"
	PhaseStanding Phase = "standing"
)

// Recorder receives a completed sit/stand cycle. The service layer's sitting
// session repository satisfies it via a small adapter at the call site.
type Recorder func(sitDuration time.Duration, exercises []string) error

// Timer is the sit/stand cycle state machine. Elapsed time is always derived
// from the stored phase start and the current wall clock, never from a
// decrementing counter, so a suspended process reads the correct remaining
// time on its next tick.
type Timer struct {
	mu sync.Mutex

	now       func() time.Time
	scheduler notify.Scheduler
	record    Recorder

	sitDuration   time.Duration
	standDuration time.Duration
	autoRestart   bool

	phase      Phase
	phaseStart time.Time
}

type Option func(*Timer)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

func WithAutoRestart(enabled bool) Option {
	return func(t *Timer) { t.autoRestart = enabled }
}

func New(sitDuration, standDuration time.Duration, scheduler notify.Scheduler, record Recorder, opts ...Option) *Timer {
	t := &Timer{
		now:           time.Now,
		scheduler:     scheduler,
		record:        record,
		sitDuration:   sitDuration,
		standDuration: standDuration,
		autoRestart:   true,
		phase:         PhaseIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPhase()
}

// Remaining returns the time left in the active countdown, zero when idle or
// when the countdown has already expired.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	var d time.Duration
	switch t.currentPhase() {
	case PhaseSitting:
		d = t.sitDuration - t.now().Sub(t.phaseStart)
	case PhaseStanding:
		d = t.standDuration - t.now().Sub(t.phaseStart)
	default:
		return 0
	}
	if d < 0 {
		return 0
	}
	return d
}

// StartSitting begins a sit countdown and schedules the stand-up reminder.
// Notification failures are logged and otherwise ignored; the state machine
// advances regardless.
func (t *Timer) StartSitting() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startSittingLocked()
}

func (t *Timer) startSittingLocked() {
	t.phase = PhaseSitting
	t.phaseStart = t.now()
	if err := t.scheduler.Schedule(notify.StandUpID, t.phaseStart.Add(t.sitDuration), "Time to stand up and move"); err != nil {
		log.Printf("schedule stand-up notification: %v", err)
	}
}

// Tick re-derives the phase from the wall clock. The foreground screen calls
// it every second and on app-foreground events.
func (t *Timer) Tick() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPhase()
}

// currentPhase folds countdown expiry into the stored phase. A sitting
// countdown that has run out reads as stand_due; the transition is observed,
// not stored, so a missed tick can never skip it.
func (t *Timer) currentPhase() Phase {
	if t.phase == PhaseSitting && t.now().Sub(t.phaseStart) >= t.sitDuration {
		return PhaseStandDue
	}
	return t.phase
}

// AcknowledgeStandDue moves stand_due into standing. The foreground screen
// calls this as soon as it observes stand_due; no user action is involved.
func (t *Timer) AcknowledgeStandDue() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.currentPhase() != PhaseStandDue {
		return false
	}
	t.phase = PhaseStanding
	t.phaseStart = t.now()
	if err := t.scheduler.Cancel(notify.StandUpID); err != nil {
		log.Printf("cancel stand-up notification: %v", err)
	}
	if err := t.scheduler.Schedule(notify.SitBackID, t.phaseStart.Add(t.standDuration), "Break done, back to it"); err != nil {
		log.Printf("schedule sit-back notification: %v", err)
	}
	return true
}

// CompleteStanding logs the finished cycle and either restarts the sit
// countdown or returns to idle, per the auto-restart setting. Completion is a
// user action, so it is accepted from standing at any time, expired or not.
func (t *Timer) CompleteStanding(exercises []string) (restarted bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseStanding {
		return false, nil
	}
	if err := t.scheduler.Cancel(notify.SitBackID); err != nil {
		log.Printf("cancel sit-back notification: %v", err)
	}
	if t.record != nil {
		if err := t.record(t.sitDuration, exercises); err != nil {
			// The cycle still ends; the caller decides what to do about
			// the failed write.
			t.phase = PhaseIdle
			return false, err
		}
	}
	if t.autoRestart {
		t.startSittingLocked()
		return true, nil
	}
	t.phase = PhaseIdle
	return false, nil
}

// CancelSitting aborts any active cycle back to idle and clears pending
// notifications.
func (t *Timer) CancelSitting() {
	t.cancel()
}

func (t *Timer) CancelStanding() {
	t.cancel()
}

func (t *Timer) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == PhaseIdle {
		return
	}
	t.phase = PhaseIdle
	for _, id := range []string{notify.StandUpID, notify.SitBackID} {
		if err := t.scheduler.Cancel(id); err != nil {
			log.Printf("cancel notification %q: %v", id, err)
		}
	}
}
