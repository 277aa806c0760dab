package game

import "time"

// EventKind tells the presentation layer how to style an event line.
type EventKind string

const (
	EventInfo     EventKind = "info"
	EventWarning  EventKind = "warning"
	EventHuman    EventKind = "human"
	EventComputer EventKind = "computer"
	EventResult   EventKind = "result"
)

// Event is one human-readable line of the session log.
type Event struct {
	Kind EventKind `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// eventLog keeps the most recent events first and drops the oldest past limit.
type eventLog struct {
	limit  int
	events []Event
}

func newEventLog(limit int) *eventLog {
	if limit <= 0 {
		limit = DefaultMaxEvents
	}
	return &eventLog{limit: limit}
}

func (l *eventLog) push(e Event) {
	l.events = append(l.events, Event{})
	copy(l.events[1:], l.events)
	l.events[0] = e
	if len(l.events) > l.limit {
		l.events = l.events[:l.limit]
	}
}

func (l *eventLog) snapshot() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
