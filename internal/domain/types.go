package domain

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Cell is the content of one grid position.
type Cell int

const (
	Empty  Cell = 0
	First  Cell = 1
	Second Cell = 2
)

// Color is the subset of Cell values a player can own. Empty is never a valid Color.
type Color = Cell

func (c Cell) IsColor() bool {
	return c == First || c == Second
}

// Opponent returns the other color. Calling it on Empty is a contract violation.
func (c Cell) Opponent() Cell {
	switch c {
	case First:
		return Second
	case Second:
		return First
	}
	panic(ErrInvalidColor)
}

func (c Cell) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return "empty"
	}
}

// ParseColor accepts the names used in configuration ("first"/"second", "red"/"black").
func ParseColor(s string) (Color, bool) {
	switch s {
	case "first", "red", "1":
		return First, true
	case "second", "black", "2":
		return Second, true
	}
	return Empty, false
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrOutOfRange   Error = "coordinate out of range"
	ErrInvalidColor Error = "mover must be a player color"
)
