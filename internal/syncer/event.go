package syncer

import "time"

// EventKind labels what produced an outbound notification.
type EventKind string

const (
	// EventInitial is the full sync fired right after the scheduler starts.
	EventInitial EventKind = "initial"
	// EventPeriodic is a timer-driven quick sync.
	EventPeriodic EventKind = "periodic"
	// EventStatus is an explicit status refresh with no sync attached.
	EventStatus EventKind = "status"
)

// Event is the notification delivered to the presentation layer after
// every scheduler-triggered run and on explicit status refresh.
type Event struct {
	Kind         EventKind  `json:"kind"`
	Success      bool       `json:"success"`
	Pulled       int        `json:"pulled,omitempty"`
	Pushed       int        `json:"pushed,omitempty"`
	Errors       []string   `json:"errors,omitempty"`
	PendingSales int        `json:"pendingSales"`
	IsOnline     bool       `json:"isOnline"`
	LastSyncAt   *time.Time `json:"lastSyncAt"`
	Timestamp    time.Time  `json:"timestamp"`
}

// Sink receives outbound events. Notify is called from the scheduler's
// goroutine and should return quickly.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }
