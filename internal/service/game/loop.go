package game

import (
	"context"
	"sync/atomic"
	"time"
)

const DefaultTickInterval = 16 * time.Millisecond

// Intent is a decoded player input.
type Intent int

const (
	IntentLeft Intent = iota + 1
	IntentRight
	IntentConfirm
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentConfirm:
		return "confirm"
	case IntentQuit:
		return "quit"
	}
	return "unknown"
}

// ParseIntent maps the wire names used by remote clients.
func ParseIntent(s string) (Intent, bool) {
	switch s {
	case "left":
		return IntentLeft, true
	case "right":
		return IntentRight, true
	case "confirm", "move":
		return IntentConfirm, true
	case "quit":
		return IntentQuit, true
	}
	return 0, false
}

// Apply dispatches one intent to the session.
func (s *Session) Apply(i Intent) bool {
	switch i {
	case IntentLeft:
		return s.SelectColumn(Left)
	case IntentRight:
		return s.SelectColumn(Right)
	case IntentConfirm:
		return s.ConfirmMove()
	case IntentQuit:
		s.Quit()
		return true
	}
	return false
}

// FrameFunc is called from the loop goroutine once per tick and after every
// intent. changed is true when the snapshot differs from the previous frame.
type FrameFunc func(snap Snapshot, changed bool)

// Loop is the fixed-rate cooperative loop that owns a Session. Intents from
// other goroutines go through Send; only Run touches the session.
type Loop struct {
	session  *Session
	interval time.Duration
	intents  chan Intent
	onFrame  FrameFunc
	latest   atomic.Pointer[Snapshot]
	done     chan struct{}
}

func NewLoop(s *Session, interval time.Duration, onFrame FrameFunc) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	l := &Loop{
		session:  s,
		interval: interval,
		intents:  make(chan Intent, 16),
		onFrame:  onFrame,
		done:     make(chan struct{}),
	}
	snap := s.Snapshot()
	l.latest.Store(&snap)
	return l
}

// Send queues an intent without blocking. It reports false when the queue is
// full or the loop has stopped; the intent is dropped in that case.
func (l *Loop) Send(i Intent) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.intents <- i:
		return true
	default:
		return false
	}
}

// Snapshot returns the most recent frame; safe from any goroutine.
func (l *Loop) Snapshot() Snapshot {
	return *l.latest.Load()
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run drives the session until it quits or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	version := l.session.Version()
	l.emit(true)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case i := <-l.intents:
			l.session.Apply(i)
		case <-ticker.C:
			l.session.Tick()
		}

		changed := l.session.Version() != version
		version = l.session.Version()
		l.emit(changed)

		if l.session.Quitted() {
			return nil
		}
	}
}

func (l *Loop) emit(changed bool) {
	snap := l.Snapshot()
	if changed {
		snap = l.session.Snapshot()
		l.latest.Store(&snap)
	}
	if l.onFrame != nil {
		l.onFrame(snap, changed)
	}
}
