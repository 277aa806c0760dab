package domain

// Board is an immutable snapshot of the grid plus whose turn it was and is.
// Row 0 is the top row. Values are copied on assignment, so a Board handed to
// another goroutine can never observe later moves.
type Board struct {
	cells    [Columns * Rows]Cell
	previous Color
	next     Color
}

// NewBoard creates an empty board. The initial previous mover is a placeholder
// since no move has been made yet.
func NewBoard(previous, next Color) Board {
	if !previous.IsColor() || !next.IsColor() {
		panic(ErrInvalidColor)
	}
	return Board{previous: previous, next: next}
}

// CellAt returns the cell at (column, row). Out-of-range coordinates are a
// caller bug and panic.
func (b Board) CellAt(column, row int) Cell {
	if !InBounds(column, row) {
		panic(ErrOutOfRange)
	}
	return b.cells[row*Columns+column]
}

func (b Board) PreviousMover() Color {
	return b.previous
}

func (b Board) NextMover() Color {
	return b.next
}

// MoveCount is the number of tokens on the board.
func (b Board) MoveCount() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// IsFull reports whether every top cell is occupied, which by gravity means
// the whole grid is.
func (b Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.cells[c] == Empty {
			return false
		}
	}
	return true
}

// Grid returns a row-major copy of the cells for transport encoding.
func (b Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for r := range grid {
		grid[r] = make([]int, Columns)
		for c := 0; c < Columns; c++ {
			grid[r][c] = int(b.cells[r*Columns+c])
		}
	}
	return grid
}

// Mirror returns the board reflected left to right.
func (b Board) Mirror() Board {
	m := b
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			m.cells[r*Columns+c] = b.cells[r*Columns+(Columns-1-c)]
		}
	}
	return m
}

// CountDiskInDirection counts consecutive cells of the given color starting
// one step away from (column, row) and walking by (deltaCol, deltaRow).
func (b Board) CountDiskInDirection(column, row, deltaCol, deltaRow int, color Color) int {
	count := 0
	c, r := column+deltaCol, row+deltaRow
	for InBounds(c, r) && b.cells[r*Columns+c] == color {
		count++
		c += deltaCol
		r += deltaRow
	}
	return count
}

func InBounds(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

// set is only used while building a successor board.
func (b *Board) set(column, row int, c Cell) {
	b.cells[row*Columns+column] = c
}
