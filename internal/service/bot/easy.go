package bot

import (
	"context"
	"math/rand"
	"sync"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

// Easy wins when it can, blocks when it must, and otherwise plays at random.
type Easy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEasy(seed int64) *Easy {
	return &Easy{rng: rand.New(rand.NewSource(seed))}
}

func (e *Easy) Search(_ context.Context, board domain.Board) (domain.Move, int) {
	me := board.NextMover()
	validColumns := domain.LegalColumns(board)
	if len(validColumns) == 0 {
		panic(domain.ErrInvalidMove)
	}

	if cols := winningColumns(board, me); len(cols) > 0 {
		return domain.Move{Color: me, Column: cols[0]}, len(validColumns)
	}
	if cols := winningColumns(board, me.Opponent()); len(cols) > 0 {
		return domain.Move{Color: me, Column: cols[0]}, 2 * len(validColumns)
	}

	e.mu.Lock()
	col := validColumns[e.rng.Intn(len(validColumns))]
	e.mu.Unlock()
	return domain.Move{Color: me, Column: col}, 2 * len(validColumns)
}
