package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

func TestAsyncDeliversResultOnce(t *testing.T) {
	release := make(chan struct{})
	o := NewAsync("test", SearcherFunc(func(ctx context.Context, b domain.Board) (domain.Move, int) {
		<-release
		return domain.Move{Color: b.NextMover(), Column: 4}, 42
	}))

	board := domain.NewBoard(domain.First, domain.Second)
	h := o.Submit(board, time.Second)
	assert.False(t, h.IsFinished())
	assert.Panics(t, func() { h.Result() })

	close(release)
	require.True(t, Wait(h, time.Second))
	require.True(t, h.IsFinished())

	res := h.Result()
	assert.Equal(t, domain.Move{Color: domain.Second, Column: 4}, res.Move)
	assert.Equal(t, 42, res.Iterations)
	assert.Panics(t, func() { h.Result() })
}

func TestAsyncHonoursBudget(t *testing.T) {
	o := NewAsync("sleepy", SearcherFunc(func(ctx context.Context, b domain.Board) (domain.Move, int) {
		<-ctx.Done()
		return domain.Move{Color: b.NextMover(), Column: 0}, 1
	}))

	h := o.Submit(domain.NewBoard(domain.First, domain.Second), 20*time.Millisecond)
	require.True(t, Wait(h, time.Second))
	assert.Equal(t, 0, h.Result().Move.Column)
}

func TestAsyncFallsBackOnIllegalMove(t *testing.T) {
	b := domain.NewBoard(domain.Second, domain.First)
	for i := 0; i < domain.Rows; i++ {
		b = domain.ApplyMove(b, domain.Move{Color: b.NextMover(), Column: 0})
	}

	o := NewAsync("broken", SearcherFunc(func(ctx context.Context, _ domain.Board) (domain.Move, int) {
		return domain.Move{Color: domain.First, Column: 0}, 3
	}))
	h := o.Submit(b, time.Second)
	require.True(t, Wait(h, time.Second))
	res := h.Result()
	assert.Equal(t, 1, res.Move.Column)
	assert.Equal(t, b.NextMover(), res.Move.Color)
}

func TestAsyncRecoversFromPanic(t *testing.T) {
	o := NewAsync("panicky", SearcherFunc(func(ctx context.Context, _ domain.Board) (domain.Move, int) {
		panic("boom")
	}))
	b := domain.NewBoard(domain.First, domain.Second)
	h := o.Submit(b, time.Second)
	require.True(t, Wait(h, time.Second))
	assert.Equal(t, domain.Move{Color: domain.Second, Column: 0}, h.Result().Move)
}

func TestSubmitSnapshotsBoard(t *testing.T) {
	seen := make(chan domain.Board, 1)
	o := NewAsync("snap", SearcherFunc(func(ctx context.Context, b domain.Board) (domain.Move, int) {
		seen <- b
		return domain.Move{Color: b.NextMover(), Column: 2}, 1
	}))

	b := domain.NewBoard(domain.First, domain.Second)
	h := o.Submit(b, time.Second)
	b = domain.ApplyMove(b, domain.Move{Color: domain.Second, Column: 6})

	got := <-seen
	assert.Equal(t, domain.Empty, got.CellAt(6, domain.Rows-1))
	require.True(t, Wait(h, time.Second))
}
