// Package navlog keeps an append-only, in-memory log of user interactions.
package navlog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action is the closed set of interaction kinds the tracker accepts.
type Action string

// Recognized action kinds.
const (
	ActionRecommend Action = "recommend"
	ActionSearch    Action = "search"
	ActionView      Action = "view"
	ActionSave      Action = "save"
)

// ParseAction maps a raw string onto the closed action set.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionRecommend, ActionSearch, ActionView, ActionSave:
		return Action(s), true
	}
	return "", false
}

// Record is a single logged interaction. Records are never mutated after
// insertion.
type Record struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    Action         `json:"action"`
	Detail    map[string]any `json:"detail,omitempty"`
}

// Tracker serializes appends behind a single mutex; log writes are cheap
// relative to scoring, so no finer-grained scheme is needed.
type Tracker struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates an empty Tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends an interaction with the current timestamp.
func (t *Tracker) Record(action Action, detail map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, Record{
		ID:        uuid.NewString(),
		Timestamp: t.now(),
		Action:    action,
		Detail:    detail,
	})
}

// History returns all records in insertion order.
func (t *Tracker) History() []Record {
	return t.HistoryByAction("")
}

// HistoryByAction returns records of the given kind in insertion order.
// An empty action matches everything.
func (t *Tracker) HistoryByAction(action Action) []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if action == "" || r.Action == action {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records held.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Reset clears the log. Intended for test isolation, not production use.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
}
