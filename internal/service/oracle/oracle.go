// Package oracle defines the boundary to the move search: a board goes in
// together with a time budget, and a one-shot handle comes back that the
// caller polls without blocking.
package oracle

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

const ErrResultNotReady domain.Error = "oracle result retrieved before it was finished"
const ErrResultTaken domain.Error = "oracle result already retrieved"

// Result is what a finished search produced.
type Result struct {
	Move       domain.Move
	Iterations int
	Elapsed    time.Duration
}

// Handle is a one-shot future for a single search request.
type Handle interface {
	// IsFinished never blocks.
	IsFinished() bool
	// Result consumes the handle. It must only be called after IsFinished
	// returned true, and only once.
	Result() Result
}

// Oracle starts a search on an independent board snapshot.
type Oracle interface {
	Submit(board domain.Board, budget time.Duration) Handle
}

// Searcher is a synchronous move search. It must return once ctx is done,
// reporting the best move found so far.
type Searcher interface {
	Search(ctx context.Context, board domain.Board) (domain.Move, int)
}

// SearcherFunc adapts a plain function to Searcher.
type SearcherFunc func(ctx context.Context, board domain.Board) (domain.Move, int)

func (f SearcherFunc) Search(ctx context.Context, board domain.Board) (domain.Move, int) {
	return f(ctx, board)
}

// Async runs a Searcher on its own goroutine per request.
type Async struct {
	searcher Searcher
	name     string
}

func NewAsync(name string, s Searcher) *Async {
	return &Async{searcher: s, name: name}
}

func (a *Async) Submit(board domain.Board, budget time.Duration) Handle {
	h := &future{done: make(chan struct{})}
	go a.run(h, board, budget)
	return h
}

func (a *Async) run(h *future, board domain.Board, budget time.Duration) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	var res Result
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ORACLE] %s search panicked: %v; falling back to first legal column", a.name, r)
			res = fallback(board)
		}
		res.Elapsed = time.Since(start)
		h.complete(res)
	}()

	move, iterations := a.searcher.Search(ctx, board)
	if !domain.IsLegal(board, move.Column) || move.Color != board.NextMover() {
		log.Printf("[ORACLE] %s returned unusable move %v; falling back to first legal column", a.name, move)
		res = fallback(board)
		res.Iterations = iterations
		return
	}
	res = Result{Move: move, Iterations: iterations}
	log.Printf("[ORACLE] %s picked column %d after %d iterations", a.name, move.Column, iterations)
}

func fallback(board domain.Board) Result {
	moves := domain.AllLegalMoves(board)
	if len(moves) == 0 {
		panic(domain.ErrInvalidMove)
	}
	return Result{Move: moves[0]}
}

type future struct {
	done     chan struct{}
	finished atomic.Bool
	once     sync.Once
	taken    atomic.Bool
	result   Result
}

func (f *future) complete(r Result) {
	f.once.Do(func() {
		f.result = r
		f.finished.Store(true)
		close(f.done)
	})
}

func (f *future) IsFinished() bool {
	return f.finished.Load()
}

func (f *future) Result() Result {
	if !f.finished.Load() {
		panic(ErrResultNotReady)
	}
	if !f.taken.CompareAndSwap(false, true) {
		panic(ErrResultTaken)
	}
	return f.result
}

// Wait blocks until the search finished. Only tests and shutdown paths use it;
// the game loop polls IsFinished instead.
func Wait(h Handle, timeout time.Duration) bool {
	f, ok := h.(*future)
	if !ok {
		deadline := time.Now().Add(timeout)
		for !h.IsFinished() {
			if time.Now().After(deadline) {
				return false
			}
			time.Sleep(time.Millisecond)
		}
		return true
	}
	select {
	case <-f.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
