package notify

import (
	"log"
	"sync"
	"time"
)

// Fixed notification identifiers. Re-scheduling finds and cancels the prior
// instance by id, keeping the daily reminder set idempotent.
const (
	StandUpID      = "daytrack.stand_up"
	SitBackID      = "daytrack.sit_back"
	FastingStartID = "daytrack.fasting_start"
	FastingEndID   = "daytrack.fasting_end"
)

// Scheduler is the bridge to the platform's local notifications. Scheduling
// the same id twice replaces the earlier request.
type Scheduler interface {
	Schedule(id string, at time.Time, message string) error
	Cancel(id string) error
}

// LogScheduler records requests in memory and logs them; it is the default
// when no platform bridge is wired and doubles as the test scheduler.
type LogScheduler struct {
	mu      sync.Mutex
	pending map[string]time.Time
}

func NewLogScheduler() *LogScheduler {
	return &LogScheduler{pending: make(map[string]time.Time)}
}

func (s *LogScheduler) Schedule(id string, at time.Time, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = at
	log.Printf("notification %q scheduled for %s: %s", id, at.Format(time.RFC3339), message)
	return nil
}

func (s *LogScheduler) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	log.Printf("notification %q cancelled", id)
	return nil
}

// Pending reports whether a request with the id is outstanding.
func (s *LogScheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}
