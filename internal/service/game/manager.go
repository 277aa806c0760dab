package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
	"github.com/iamasit07/4-in-a-row/solo/pkg/uid"
)

// SnapshotStore mirrors live snapshots somewhere spectators can read them.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	DeleteSnapshot(ctx context.Context, sessionID string) error
}

// OracleFactory builds the oracle for a new session's difficulty.
type OracleFactory func(difficulty string) (oracle.Oracle, string, error)

// CreateRequest is what a client asks for when starting a session.
type CreateRequest struct {
	Difficulty string
	Options    Options
}

// Entry is a running session and its loop.
type Entry struct {
	ID         string
	Difficulty string
	Loop       *Loop
	CreatedAt  time.Time

	cancel      context.CancelFunc
	pending     chan Snapshot
	flushed     chan struct{}
	mu          sync.Mutex
	subscribers map[chan Snapshot]struct{}
	lastActive  time.Time
}

// Subscribe returns a channel that receives every changed snapshot. Slow
// readers miss intermediate frames rather than stalling the loop.
func (e *Entry) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	// under the lock so closeSubscribers cannot close ch first
	ch <- e.Loop.Snapshot()
	e.mu.Unlock()

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
	}
}

// Send forwards an intent to the loop and marks the entry as active.
func (e *Entry) Send(i Intent) bool {
	e.mu.Lock()
	e.lastActive = time.Now()
	e.mu.Unlock()
	return e.Loop.Send(i)
}

func (e *Entry) LastActive() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastActive
}

func (e *Entry) broadcast(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (e *Entry) closeSubscribers() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		delete(e.subscribers, ch)
		close(ch)
	}
}

// SessionManager manages active game sessions in server mode.
type SessionManager struct {
	Session  map[string]*Entry
	mu       sync.RWMutex
	oracles  OracleFactory
	store    SnapshotStore
	interval time.Duration
}

func NewSessionManager(oracles OracleFactory, store SnapshotStore, tick time.Duration) *SessionManager {
	return &SessionManager{
		Session:  make(map[string]*Entry),
		oracles:  oracles,
		store:    store,
		interval: tick,
	}
}

// CreateSession builds a session and starts its loop on a new goroutine.
func (sm *SessionManager) CreateSession(req CreateRequest) (*Entry, error) {
	o, name, err := sm.oracles(req.Difficulty)
	if err != nil {
		return nil, err
	}

	id := uid.GenerateGameID()
	opts := req.Options
	if opts.ComputerName == "" {
		opts.ComputerName = name
	}
	session := NewSession(id, o, opts)

	ctx, cancel := context.WithCancel(context.Background())
	entry := &Entry{
		ID:          id,
		Difficulty:  req.Difficulty,
		CreatedAt:   time.Now(),
		cancel:      cancel,
		subscribers: make(map[chan Snapshot]struct{}),
		pending:     make(chan Snapshot, 1),
		flushed:     make(chan struct{}),
		lastActive:  time.Now(),
	}
	entry.Loop = NewLoop(session, sm.interval, func(snap Snapshot, changed bool) {
		if !changed {
			return
		}
		entry.broadcast(snap)
		entry.queuePublish(snap)
	})

	sm.mu.Lock()
	sm.Session[id] = entry
	sm.mu.Unlock()

	go sm.publishLoop(entry)
	go func() {
		if err := entry.Loop.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("[SESSION] Loop for %s stopped: %v", id, err)
		}
		entry.closeSubscribers()
		close(entry.pending)
	}()

	log.Printf("[SESSION] Created session %s against %s (%s)", id, name, req.Difficulty)
	return entry, nil
}

func (sm *SessionManager) GetSession(id string) (*Entry, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	e, ok := sm.Session[id]
	return e, ok
}

// RemoveSession stops the loop and forgets the session.
func (sm *SessionManager) RemoveSession(id string) bool {
	sm.mu.Lock()
	e, ok := sm.Session[id]
	delete(sm.Session, id)
	sm.mu.Unlock()
	if !ok {
		return false
	}

	e.cancel()
	// Wait for queued writes so none of them lands after the delete.
	<-e.flushed
	if sm.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := sm.store.DeleteSnapshot(ctx, id); err != nil {
			log.Printf("[SESSION] Failed to drop cached snapshot for %s: %v", id, err)
		}
	}
	log.Printf("[SESSION] Removed session %s", id)
	return true
}

// LiveGame is the summary listed to spectators.
type LiveGame struct {
	GameID     string    `json:"gameId"`
	Difficulty string    `json:"difficulty"`
	Phase      Phase     `json:"phase"`
	MoveCount  int       `json:"moveCount"`
	StartedAt  time.Time `json:"startedAt"`
}

func (sm *SessionManager) GetActiveGames() []LiveGame {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]LiveGame, 0, len(sm.Session))
	for id, e := range sm.Session {
		snap := e.Loop.Snapshot()
		if snap.Terminal || snap.Quit {
			continue
		}
		games = append(games, LiveGame{
			GameID:     id,
			Difficulty: e.Difficulty,
			Phase:      snap.Phase,
			MoveCount:  snap.MoveCount,
			StartedAt:  e.CreatedAt,
		})
	}
	return games
}

// CleanupOldSessions drops sessions that ended or have been idle too long.
func (sm *SessionManager) CleanupOldSessions(idle time.Duration) int {
	now := time.Now()
	var stale []string

	sm.mu.RLock()
	for id, e := range sm.Session {
		snap := e.Loop.Snapshot()
		finished := snap.Quit || snap.Terminal
		if finished && now.Sub(snap.UpdatedAt) > time.Minute {
			stale = append(stale, id)
			continue
		}
		if now.Sub(e.LastActive()) > idle {
			stale = append(stale, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range stale {
		sm.RemoveSession(id)
	}
	if len(stale) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", len(stale))
	}
	return len(stale)
}

// Shutdown stops every loop.
func (sm *SessionManager) Shutdown() {
	sm.mu.Lock()
	ids := make([]string, 0, len(sm.Session))
	for id := range sm.Session {
		ids = append(ids, id)
	}
	sm.mu.Unlock()
	for _, id := range ids {
		sm.RemoveSession(id)
	}
}

// queuePublish keeps only the newest unsent snapshot. It is called from the
// loop goroutine only, so the second send cannot block.
func (e *Entry) queuePublish(snap Snapshot) {
	select {
	case e.pending <- snap:
	default:
		select {
		case <-e.pending:
		default:
		}
		e.pending <- snap
	}
}

// publishLoop writes snapshots to the store off the loop goroutine, in order.
// flushed is closed once the loop has stopped and every queued snapshot has
// been written.
func (sm *SessionManager) publishLoop(e *Entry) {
	defer close(e.flushed)
	for snap := range e.pending {
		if sm.store == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := sm.store.SaveSnapshot(ctx, snap); err != nil {
			log.Printf("[SESSION] Failed to cache snapshot for %s: %v", snap.SessionID, err)
		}
		cancel()
	}
}
