package domain

// Outcome is how a finished game ended. It is deliberately not a Cell: a tie
// is not a color.
type Outcome int

const (
	FirstWon Outcome = iota + 1
	SecondWon
	Tie
)

func (o Outcome) String() string {
	switch o {
	case FirstWon:
		return "first_won"
	case SecondWon:
		return "second_won"
	case Tie:
		return "tie"
	}
	return "none"
}

// Winner returns the winning color, or false for a tie.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case FirstWon:
		return First, true
	case SecondWon:
		return Second, true
	}
	return Empty, false
}

func (o Outcome) IsWinFor(c Color) bool {
	w, ok := o.Winner()
	return ok && w == c
}

func wonBy(c Color) Outcome {
	if c == First {
		return FirstWon
	}
	return SecondWon
}

// Point is a (column, row) grid coordinate.
type Point struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Line is four collinear cells.
type Line [ToWin]Point

// Axis is a step direction for line generation.
type Axis struct {
	Name     string
	DeltaCol int
	DeltaRow int
}

var Axes = []Axis{
	{Name: "horizontal", DeltaCol: 1, DeltaRow: 0},
	{Name: "vertical", DeltaCol: 0, DeltaRow: 1},
	{Name: "diagonal_down_right", DeltaCol: 1, DeltaRow: 1},
	{Name: "diagonal_down_left", DeltaCol: -1, DeltaRow: 1},
}

var lines = generateLines()

// generateLines enumerates every start point on every axis whose fourth cell
// is still on the grid.
func generateLines() []Line {
	var out []Line
	for _, axis := range Axes {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				endCol := col + axis.DeltaCol*(ToWin-1)
				endRow := row + axis.DeltaRow*(ToWin-1)
				if !InBounds(endCol, endRow) {
					continue
				}
				var l Line
				for i := 0; i < ToWin; i++ {
					l[i] = Point{Column: col + axis.DeltaCol*i, Row: row + axis.DeltaRow*i}
				}
				out = append(out, l)
			}
		}
	}
	return out
}

// Lines returns a copy of every candidate four-in-a-row on the grid.
func Lines() []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func (b Board) sameColor(l Line, c Color) bool {
	for _, p := range l {
		if b.cells[p.Row*Columns+p.Column] != c {
			return false
		}
	}
	return true
}

// WinningLine returns the first line held entirely by one color.
func WinningLine(b Board) (Line, Color, bool) {
	for _, l := range lines {
		for _, c := range [...]Color{First, Second} {
			if b.sameColor(l, c) {
				return l, c, true
			}
		}
	}
	return Line{}, Empty, false
}

// TerminalOutcome reports whether the game on b is over and how. The second
// return value is false while the game is still live.
func TerminalOutcome(b Board) (Outcome, bool) {
	if _, c, ok := WinningLine(b); ok {
		return wonBy(c), true
	}
	if b.IsFull() {
		return Tie, true
	}
	return 0, false
}

// CheckWin only looks at lines through (column, row), which is enough right
// after a token landed there.
func CheckWin(b Board, column, row int, color Color) bool {
	for _, axis := range Axes {
		n := 1 + b.CountDiskInDirection(column, row, axis.DeltaCol, axis.DeltaRow, color) +
			b.CountDiskInDirection(column, row, -axis.DeltaCol, -axis.DeltaRow, color)
		if n >= ToWin {
			return true
		}
	}
	return false
}
