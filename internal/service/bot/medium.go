package bot

import (
	"context"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

// Medium scores each column with a fixed set of one- and two-ply heuristics.
type Medium struct{}

func (Medium) Search(_ context.Context, board domain.Board) (domain.Move, int) {
	me := board.NextMover()
	opponent := me.Opponent()
	validColumns := domain.LegalColumns(board)
	if len(validColumns) == 0 {
		panic(domain.ErrInvalidMove)
	}

	type sim struct {
		board domain.Board
		row   int
	}
	mine := make(map[int]sim, len(validColumns))
	theirs := make(map[int]sim, len(validColumns))
	for _, col := range validColumns {
		b, row, _ := domain.SimulateMove(board, col, me)
		mine[col] = sim{b, row}
		b, row, _ = domain.SimulateMove(board, col, opponent)
		theirs[col] = sim{b, row}
	}

	currentOpponentThreat := evaluateWinningThreat(board, opponent)
	scores := make(map[int]int, len(validColumns))
	center := domain.Columns / 2

	for _, col := range validColumns {
		my, their := mine[col], theirs[col]
		score := 0

		if domain.CheckWin(my.board, col, my.row, me) {
			score += SCORE_WIN_NOW
		}
		if domain.CheckWin(their.board, col, their.row, opponent) {
			score += SCORE_BLOCK_WIN
		}

		score += evaluateWinningThreat(my.board, me)
		if evaluateWinningThreat(my.board, opponent) < currentOpponentThreat {
			score += SCORE_BLOCK_WIN_THREAT
		}

		score += evaluateThreats(my.board, col, my.row, me)
		score += evaluateThreats(their.board, col, their.row, opponent) / 2

		switch abs(col - center) {
		case 0:
			score += SCORE_CENTER
		case 1:
			score += SCORE_NEAR_CENTER
		case 2:
			score += SCORE_EDGE
		}

		scores[col] = score
	}

	return domain.Move{Color: me, Column: findBestColumn(scores)}, len(validColumns) * 2
}

// findBestColumn prefers the column closest to the center on equal scores.
func findBestColumn(scores map[int]int) int {
	center := domain.Columns / 2
	best := -1
	bestScore := 0
	for col := 0; col < domain.Columns; col++ {
		score, ok := scores[col]
		if !ok {
			continue
		}
		if best < 0 || score > bestScore || (score == bestScore && abs(col-center) < abs(best-center)) {
			best = col
			bestScore = score
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
