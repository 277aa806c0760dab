package cleanup

import (
	"context"
	"log"
	"time"
)

// Sweeper evicts stale sessions and reports how many it removed.
type Sweeper interface {
	CleanupOldSessions(idle time.Duration) int
}

type Worker struct {
	Sessions    Sweeper
	IdleTimeout time.Duration
	Interval    time.Duration
}

func NewWorker(s Sweeper, idle time.Duration) *Worker {
	interval := idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	return &Worker{Sessions: s, IdleTimeout: idle, Interval: interval}
}

// Start runs one sweep immediately, then one per interval until ctx ends.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	if removed := w.Sessions.CleanupOldSessions(w.IdleTimeout); removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale sessions", removed)
	}
}
