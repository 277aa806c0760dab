package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

func play(t *testing.T, b domain.Board, cols ...int) domain.Board {
	t.Helper()
	for _, col := range cols {
		require.True(t, domain.IsLegal(b, col))
		b = domain.ApplyMove(b, domain.Move{Color: b.NextMover(), Column: col})
	}
	return b
}

func searchers() map[string]oracle.Searcher {
	return map[string]oracle.Searcher{
		"easy":   NewEasy(1),
		"medium": Medium{},
		"hard":   Hard{},
	}
}

func TestSearchersTakeImmediateWin(t *testing.T) {
	// First has three on the bottom row in columns 0-2 and is to move.
	b := play(t, domain.NewBoard(domain.Second, domain.First), 0, 0, 1, 1, 2, 6)

	for name, s := range searchers() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			move, _ := s.Search(ctx, b)
			assert.Equal(t, domain.First, move.Color)
			assert.Equal(t, 3, move.Column)
		})
	}
}

func TestSearchersBlockImmediateLoss(t *testing.T) {
	// Second threatens column 3 on the bottom row; First must block.
	b := play(t, domain.NewBoard(domain.Second, domain.First), 6, 0, 6, 1, 5, 2)

	for name, s := range searchers() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			move, _ := s.Search(ctx, b)
			assert.Equal(t, 3, move.Column)
		})
	}
}

func TestHardReturnsLegalMoveWhenDeadlinePassed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := domain.NewBoard(domain.First, domain.Second)
	move, _ := Hard{}.Search(ctx, b)
	assert.True(t, domain.IsLegal(b, move.Column))
	assert.Equal(t, domain.Second, move.Color)
}

func TestHardReportsIterations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, iterations := Hard{MaxDepth: 4}.Search(ctx, domain.NewBoard(domain.First, domain.Second))
	assert.Greater(t, iterations, 0)
}

func TestNewOracle(t *testing.T) {
	o, err := NewOracle("medium")
	require.NoError(t, err)

	h := o.Submit(domain.NewBoard(domain.Second, domain.First), time.Second)
	require.True(t, oracle.Wait(h, 2*time.Second))
	res := h.Result()
	assert.Equal(t, domain.First, res.Move.Color)
	assert.Equal(t, domain.Columns/2, res.Move.Column)

	_, err = NewOracle("impossible")
	assert.Error(t, err)
}

func TestOrderCenterFirst(t *testing.T) {
	assert.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, orderCenterFirst([]int{0, 1, 2, 3, 4, 5, 6}))
	assert.Equal(t, []int{5, 0, 1, 3}, promote([]int{0, 1, 3, 5}, 5))
}
