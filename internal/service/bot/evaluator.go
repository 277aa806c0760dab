package bot

import (
	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_WIN_NOW           = 100000 // Bot can win immediately
	SCORE_BLOCK_WIN         = 10000  // Block opponent's immediate win
	SCORE_CREATE_WIN_THREAT = 8000   // Create a position where bot can win next move
	SCORE_BLOCK_WIN_THREAT  = 5000   // Block opponent's potential win setup
	SCORE_THREE_IN_ROW      = 400
	SCORE_TWO_IN_ROW        = 100
	SCORE_CENTER            = 30
	SCORE_NEAR_CENTER       = 20
	SCORE_EDGE              = 5
)

var directions = [][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal \
	{-1, 1}, // diagonal /
}

// evaluateBoard is the static score of a position from botPlayer's side.
func evaluateBoard(board domain.Board, botPlayer domain.Color) int {
	opponent := botPlayer.Opponent()
	score := 0

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch board.CellAt(col, row) {
			case botPlayer:
				score += evaluatePosition(board, col, row, botPlayer)
			case opponent:
				score -= evaluatePosition(board, col, row, opponent)
			}
		}
	}

	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board.CellAt(centerCol, row) {
		case botPlayer:
			score += POSITION_WEIGHT * 2
		case opponent:
			score -= POSITION_WEIGHT * 2
		}
	}

	return score
}

func evaluatePosition(board domain.Board, col, row int, player domain.Color) int {
	score := POSITION_WEIGHT

	for _, dir := range directions {
		dCol, dRow := dir[0], dir[1]
		posCount := board.CountDiskInDirection(col, row, dCol, dRow, player)
		negCount := board.CountDiskInDirection(col, row, -dCol, -dRow, player)
		total := posCount + negCount

		if !checkSpaceForExtension(board, col, row, dCol, dRow, posCount, negCount) {
			continue
		}
		if total >= 2 {
			score += THREE_IN_ROW_WEIGHT
		} else if total == 1 {
			score += TWO_IN_ROW_WEIGHT
		}
	}

	return score
}

// evaluateThreats scores the lines running through the token just placed at (col, row).
func evaluateThreats(board domain.Board, col, row int, player domain.Color) int {
	score := 0
	for _, dir := range directions {
		dCol, dRow := dir[0], dir[1]
		posCount := board.CountDiskInDirection(col, row, dCol, dRow, player)
		negCount := board.CountDiskInDirection(col, row, -dCol, -dRow, player)
		total := posCount + negCount

		if !checkSpaceForExtension(board, col, row, dCol, dRow, posCount, negCount) {
			continue
		}

		switch {
		case total >= 2:
			score += SCORE_THREE_IN_ROW
		case total == 1:
			score += SCORE_TWO_IN_ROW
		}
	}
	return score
}

// winningColumns lists the columns where player would complete four right now.
func winningColumns(board domain.Board, player domain.Color) []int {
	var cols []int
	for _, col := range domain.LegalColumns(board) {
		next, row, err := domain.SimulateMove(board, col, player)
		if err != nil {
			continue
		}
		if domain.CheckWin(next, col, row, player) {
			cols = append(cols, col)
		}
	}
	return cols
}

// evaluateWinningThreat rates how hard it is for opponent to stop player's
// immediate wins. Two or more winning columns cannot both be blocked.
func evaluateWinningThreat(board domain.Board, player domain.Color) int {
	winning := winningColumns(board, player)

	if len(winning) >= 2 {
		return SCORE_CREATE_WIN_THREAT
	}
	if len(winning) == 1 {
		blocked, _, err := domain.SimulateMove(board, winning[0], player.Opponent())
		if err == nil && len(winningColumns(blocked, player)) > 0 {
			return SCORE_CREATE_WIN_THREAT / 2
		}
		return SCORE_CREATE_WIN_THREAT / 4
	}
	return 0
}

func checkSpaceForExtension(board domain.Board, col, row, dCol, dRow, posCount, negCount int) bool {
	posCol := col + dCol*(posCount+1)
	posRow := row + dRow*(posCount+1)
	if isPlayableSpace(board, posCol, posRow) {
		return true
	}

	negCol := col - dCol*(negCount+1)
	negRow := row - dRow*(negCount+1)
	return isPlayableSpace(board, negCol, negRow)
}

// isPlayableSpace reports an empty in-bounds cell that is resting on something.
func isPlayableSpace(board domain.Board, col, row int) bool {
	if !domain.InBounds(col, row) || board.CellAt(col, row) != domain.Empty {
		return false
	}
	if row == domain.Rows-1 {
		return true
	}
	return board.CellAt(col, row+1) != domain.Empty
}
