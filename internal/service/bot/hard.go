package bot

import (
	"context"
	"math"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

const (
	MINIMAX_MAX_DEPTH   = 42
	MINIMAX_WIN         = 1000000
	MINIMAX_LOSS        = -1000000
	POSITION_WEIGHT     = 10
	TWO_IN_ROW_WEIGHT   = 50
	THREE_IN_ROW_WEIGHT = 500
)

// Hard runs alpha-beta minimax with iterative deepening until the context
// deadline, keeping the best move of the deepest completed iteration.
type Hard struct {
	// MaxDepth caps the deepening; zero means no cap beyond the board size.
	MaxDepth int
}

type minimaxSearch struct {
	ctx     context.Context
	me      domain.Color
	nodes   int
	aborted bool
}

func (h Hard) Search(ctx context.Context, board domain.Board) (domain.Move, int) {
	me := board.NextMover()
	validColumns := orderCenterFirst(domain.LegalColumns(board))
	if len(validColumns) == 0 {
		panic(domain.ErrInvalidMove)
	}

	// Take an immediate win without searching.
	if cols := winningColumns(board, me); len(cols) > 0 {
		return domain.Move{Color: me, Column: cols[0]}, len(validColumns)
	}

	maxDepth := h.MaxDepth
	if maxDepth <= 0 || maxDepth > MINIMAX_MAX_DEPTH {
		maxDepth = MINIMAX_MAX_DEPTH
	}
	if empty := domain.Rows*domain.Columns - board.MoveCount(); maxDepth > empty {
		maxDepth = empty
	}

	s := &minimaxSearch{ctx: ctx, me: me}
	bestCol := validColumns[0]

	for depth := 1; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		col, score, ok := s.root(board, validColumns, depth)
		if !ok {
			break
		}
		bestCol = col
		// Promote the previous best so the next iteration prunes harder.
		validColumns = promote(validColumns, col)
		if score >= MINIMAX_WIN-MINIMAX_MAX_DEPTH || score <= MINIMAX_LOSS+MINIMAX_MAX_DEPTH {
			break
		}
	}

	return domain.Move{Color: me, Column: bestCol}, s.nodes
}

func (s *minimaxSearch) root(board domain.Board, columns []int, depth int) (int, int, bool) {
	bestCol := columns[0]
	bestScore := math.MinInt32
	alpha, beta := math.MinInt32, math.MaxInt32

	for _, col := range columns {
		next, row, err := domain.SimulateMove(board, col, s.me)
		if err != nil {
			continue
		}
		var score int
		if domain.CheckWin(next, col, row, s.me) {
			score = MINIMAX_WIN
		} else {
			score = s.minimax(next, depth-1, 1, alpha, beta, false)
		}
		if s.aborted {
			return 0, 0, false
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}
	return bestCol, bestScore, true
}

func (s *minimaxSearch) minimax(board domain.Board, depth, ply, alpha, beta int, isMaximizing bool) int {
	s.nodes++
	if s.nodes&1023 == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	if s.aborted {
		return 0
	}

	validColumns := orderCenterFirst(domain.LegalColumns(board))
	if len(validColumns) == 0 {
		return 0
	}
	if depth == 0 {
		return evaluateBoard(board, s.me)
	}

	mover := s.me
	if !isMaximizing {
		mover = s.me.Opponent()
	}

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			next, row, _ := domain.SimulateMove(board, col, mover)
			if domain.CheckWin(next, col, row, mover) {
				return MINIMAX_WIN - ply // Prefer quicker wins
			}
			eval := s.minimax(next, depth-1, ply+1, alpha, beta, false)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		next, row, _ := domain.SimulateMove(board, col, mover)
		if domain.CheckWin(next, col, row, mover) {
			return MINIMAX_LOSS + ply // Prefer delaying losses
		}
		eval := s.minimax(next, depth-1, ply+1, alpha, beta, true)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

func orderCenterFirst(cols []int) []int {
	center := domain.Columns / 2
	out := make([]int, len(cols))
	copy(out, cols)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && abs(out[j]-center) < abs(out[j-1]-center); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func promote(cols []int, col int) []int {
	out := make([]int, 0, len(cols))
	out = append(out, col)
	for _, c := range cols {
		if c != col {
			out = append(out, c)
		}
	}
	return out
}
