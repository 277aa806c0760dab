package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
)

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "connect4:snapshot:abc", snapshotKey("abc"))
}

func TestDisabledStore(t *testing.T) {
	store := NewSnapshotStore(nil, 0)
	ctx := context.Background()

	assert.Equal(t, DefaultSnapshotTTL, store.ttl)
	require.NoError(t, store.SaveSnapshot(ctx, game.Snapshot{SessionID: "abc"}))
	require.NoError(t, store.DeleteSnapshot(ctx, "abc"))

	_, err := store.LoadSnapshot(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheDisabled)
}
