package game

import (
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

// fakeHandle finishes only when the test says so.
type fakeHandle struct {
	finished bool
	taken    int
	result   oracle.Result
}

func (h *fakeHandle) IsFinished() bool { return h.finished }

func (h *fakeHandle) Result() oracle.Result {
	if !h.finished {
		panic(oracle.ErrResultNotReady)
	}
	h.taken++
	return h.result
}

// fakeOracle records submissions and answers with scripted columns.
type fakeOracle struct {
	columns   []int
	submitted []domain.Board
	budgets   []time.Duration
	handles   []*fakeHandle
}

func (o *fakeOracle) Submit(b domain.Board, budget time.Duration) oracle.Handle {
	col := 0
	if len(o.columns) > 0 {
		col = o.columns[0]
		o.columns = o.columns[1:]
	}
	h := &fakeHandle{result: oracle.Result{Move: domain.Move{Color: b.NextMover(), Column: col}, Iterations: 10}}
	o.submitted = append(o.submitted, b)
	o.budgets = append(o.budgets, budget)
	o.handles = append(o.handles, h)
	return h
}

func (o *fakeOracle) last() *fakeHandle {
	return o.handles[len(o.handles)-1]
}
