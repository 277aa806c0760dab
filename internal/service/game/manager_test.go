package game

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

type memoryStore struct {
	mu    sync.Mutex
	snaps map[string]Snapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snaps: make(map[string]Snapshot)}
}

func (m *memoryStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.SessionID] = snap
	return nil
}

func (m *memoryStore) DeleteSnapshot(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}

func (m *memoryStore) get(id string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[id]
	return s, ok
}

func firstColumnOracle(difficulty string) (oracle.Oracle, string, error) {
	return oracle.NewAsync("first", oracle.SearcherFunc(func(ctx context.Context, b domain.Board) (domain.Move, int) {
		return domain.AllLegalMoves(b)[0], 1
	})), "Tester", nil
}

func TestManagerCreatePlayAndRemove(t *testing.T) {
	store := newMemoryStore()
	sm := NewSessionManager(firstColumnOracle, store, time.Millisecond)
	defer sm.Shutdown()

	entry, err := sm.CreateSession(CreateRequest{Difficulty: "easy", Options: Options{SearchBudget: 20 * time.Millisecond}})
	require.NoError(t, err)

	got, ok := sm.GetSession(entry.ID)
	require.True(t, ok)
	assert.Same(t, entry, got)

	updates, unsubscribe := entry.Subscribe()
	defer unsubscribe()
	first := <-updates
	assert.Equal(t, AwaitingHumanInput, first.Phase)

	require.True(t, entry.Send(IntentConfirm))
	waitFor(t, func() bool {
		snap, ok := store.get(entry.ID)
		return ok && snap.MoveCount == 2
	})

	live := sm.GetActiveGames()
	require.Len(t, live, 1)
	assert.Equal(t, entry.ID, live[0].GameID)
	assert.Equal(t, "easy", live[0].Difficulty)

	assert.True(t, sm.RemoveSession(entry.ID))
	assert.False(t, sm.RemoveSession(entry.ID))
	_, ok = store.get(entry.ID)
	assert.False(t, ok)
	<-entry.Loop.Done()
}

func TestCleanupDropsIdleSessions(t *testing.T) {
	sm := NewSessionManager(firstColumnOracle, nil, time.Millisecond)
	defer sm.Shutdown()

	entry, err := sm.CreateSession(CreateRequest{})
	require.NoError(t, err)

	assert.Zero(t, sm.CleanupOldSessions(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, sm.CleanupOldSessions(time.Millisecond))
	_, ok := sm.GetSession(entry.ID)
	assert.False(t, ok)
}

// gatedStore blocks its first save until release is closed.
type gatedStore struct {
	*memoryStore
	started chan struct{}
	release chan struct{}
	saves   atomic.Int32
}

func (g *gatedStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if g.saves.Add(1) == 1 {
		close(g.started)
		<-g.release
	}
	return g.memoryStore.SaveSnapshot(ctx, snap)
}

func TestRemoveSessionWaitsForInFlightSave(t *testing.T) {
	store := &gatedStore{memoryStore: newMemoryStore(), started: make(chan struct{}), release: make(chan struct{})}
	sm := NewSessionManager(firstColumnOracle, store, time.Millisecond)
	defer sm.Shutdown()

	entry, err := sm.CreateSession(CreateRequest{})
	require.NoError(t, err)
	<-store.started

	removed := make(chan struct{})
	go func() {
		sm.RemoveSession(entry.ID)
		close(removed)
	}()

	assert.Never(t, func() bool {
		select {
		case <-removed:
			return true
		default:
			return false
		}
	}, 20*time.Millisecond, 2*time.Millisecond)

	close(store.release)
	select {
	case <-removed:
	case <-time.After(2 * time.Second):
		t.Fatal("RemoveSession did not return")
	}

	_, ok := store.get(entry.ID)
	assert.False(t, ok)
}

func TestSubscribeAfterLoopEnds(t *testing.T) {
	sm := NewSessionManager(firstColumnOracle, nil, time.Millisecond)
	defer sm.Shutdown()

	entry, err := sm.CreateSession(CreateRequest{})
	require.NoError(t, err)
	require.True(t, entry.Send(IntentQuit))
	<-entry.Loop.Done()

	updates, unsubscribe := entry.Subscribe()
	defer unsubscribe()
	snap := <-updates
	assert.True(t, snap.Quit)
}
