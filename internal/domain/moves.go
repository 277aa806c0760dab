package domain

import "fmt"

// Move drops one token of Color into Column.
type Move struct {
	Color  Color `json:"color"`
	Column int   `json:"column"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Color, m.Column)
}

// IsLegal reports whether a token can still be dropped into column.
func IsLegal(b Board, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b.cells[column] == Empty
}

// AllLegalMoves returns one move per open column for the next mover, in
// ascending column order. It is empty only when the board is full.
func AllLegalMoves(b Board) []Move {
	moves := make([]Move, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.cells[col] == Empty {
			moves = append(moves, Move{Color: b.next, Column: col})
		}
	}
	return moves
}

// LegalColumns is AllLegalMoves without the color.
func LegalColumns(b Board) []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.cells[col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

// DropRow returns the row a token dropped into column would land on.
func DropRow(b Board, column int) (int, bool) {
	if !IsLegal(b, column) {
		return -1, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row*Columns+column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// ApplyMove returns the board after m. Submitting a move into a full or
// out-of-range column is a caller bug and panics; b itself is never modified.
func ApplyMove(b Board, m Move) Board {
	if !m.Color.IsColor() {
		panic(ErrInvalidColor)
	}
	row, ok := DropRow(b, m.Column)
	if !ok {
		panic(fmt.Errorf("%w: column %d", ErrColumnFull, m.Column))
	}

	next := b
	next.set(m.Column, row, m.Color)
	next.previous = m.Color
	next.next = m.Color.Opponent()
	return next
}

// SimulateMove is ApplyMove for callers that do not know whether the column is
// open, such as search code probing candidate replies.
func SimulateMove(b Board, column int, color Color) (Board, int, error) {
	row, ok := DropRow(b, column)
	if !ok {
		return b, -1, ErrColumnFull
	}
	return ApplyMove(b, Move{Color: color, Column: column}), row, nil
}
