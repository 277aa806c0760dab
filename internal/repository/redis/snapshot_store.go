package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
)

const (
	snapshotKeyPrefix  = "connect4:snapshot:"
	updatesChannel     = "connect4:updates"
	DefaultSnapshotTTL = time.Hour
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCacheDisabled    = errors.New("snapshot cache disabled")
)

func snapshotKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

// SnapshotStore caches the latest snapshot of every live session and
// announces each write on the updates channel for other server instances.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore wraps client. A nil client yields a store that drops
// writes and reports ErrCacheDisabled on reads.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap game.Snapshot) error {
	if s.client == nil {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(snap.SessionID), payload, s.ttl)
	pipe.Publish(ctx, updatesChannel, snap.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save snapshot %s", snap.SessionID)
	}
	return nil
}

func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		return errors.Wrapf(err, "delete snapshot %s", sessionID)
	}
	return nil
}

// LoadSnapshot returns the cached snapshot JSON exactly as it was written.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context, sessionID string) (json.RawMessage, error) {
	if s.client == nil {
		return nil, ErrCacheDisabled
	}
	raw, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot %s", sessionID)
	}
	return json.RawMessage(raw), nil
}

var _ game.SnapshotStore = (*SnapshotStore)(nil)
