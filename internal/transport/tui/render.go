package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
)

const (
	boardLeft = 2
	boardTop  = 3
	cellWidth = 2
)

var spinnerFrames = []rune{'|', '/', '-', '\\'}

var (
	styleDefault  = tcell.StyleDefault
	styleFrame    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFirst    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSecond   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLanding  = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleWinning  = tcell.StyleDefault.Reverse(true).Bold(true)
	styleWarning  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleResult   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleComputer = tcell.StyleDefault.Foreground(tcell.ColorLightBlue)
)

// Renderer draws snapshots onto a tcell screen.
type Renderer struct {
	screen       tcell.Screen
	messageLimit int
	ticks        int
}

func NewRenderer(screen tcell.Screen, messageLimit int) *Renderer {
	if messageLimit < 1 {
		messageLimit = 10
	}
	return &Renderer{screen: screen, messageLimit: messageLimit}
}

// Draw paints a full frame. It is called on every tick so the spinner
// advances while the computer is thinking.
func (r *Renderer) Draw(snap game.Snapshot) {
	r.ticks++
	r.screen.Clear()

	r.drawHeader(snap)
	r.drawCursor(snap)
	r.drawBoard(snap)
	r.drawEvents(snap, boardTop+domain.Rows+2)

	r.screen.Show()
}

func (r *Renderer) drawHeader(snap game.Snapshot) {
	human := snap.HumanColor
	text := fmt.Sprintf("Connect Four   you: %c   computer: %c", glyph(human), glyph(human.Opponent()))
	r.text(0, 0, styleDefault, text)

	var status string
	switch {
	case snap.Quit:
		status = "Bye."
	case snap.Terminal:
		status = "Game over. Press q to quit."
	case snap.Phase == game.WaitingOnOracle:
		status = fmt.Sprintf("Thinking %c", spinnerFrames[(r.ticks/8)%len(spinnerFrames)])
	default:
		status = "Your move: <-/-> select, Enter drop, q quit"
	}
	r.text(0, 1, styleFrame, status)
}

// drawCursor shows the human's disc above the highlighted column.
func (r *Renderer) drawCursor(snap game.Snapshot) {
	if snap.Terminal || snap.Phase != game.AwaitingHumanInput {
		return
	}
	x := boardLeft + snap.Column*cellWidth
	r.screen.SetContent(x, boardTop-1, glyph(snap.HumanColor), nil, colorStyle(snap.HumanColor))
}

func (r *Renderer) drawBoard(snap game.Snapshot) {
	winning := make(map[domain.Point]bool, len(snap.WinningLine))
	for _, p := range snap.WinningLine {
		winning[p] = true
	}

	for row := 0; row < domain.Rows; row++ {
		y := boardTop + row
		r.screen.SetContent(boardLeft-2, y, '|', nil, styleFrame)
		r.screen.SetContent(boardLeft+domain.Columns*cellWidth-1, y, '|', nil, styleFrame)

		for col := 0; col < domain.Columns; col++ {
			x := boardLeft + col*cellWidth
			cell := snap.Board.CellAt(col, row)

			switch {
			case cell != domain.Empty:
				style := colorStyle(cell)
				if winning[domain.Point{Column: col, Row: row}] {
					style = styleWinning
				}
				r.screen.SetContent(x, y, glyph(cell), nil, style)
			case !snap.Terminal && snap.Phase == game.AwaitingHumanInput && col == snap.Column && row == snap.LandingRow:
				r.screen.SetContent(x, y, '+', nil, styleLanding)
			default:
				r.screen.SetContent(x, y, '.', nil, styleFrame)
			}
		}
	}

	base := boardTop + domain.Rows
	for x := boardLeft - 2; x < boardLeft+domain.Columns*cellWidth; x++ {
		r.screen.SetContent(x, base, '-', nil, styleFrame)
	}
	for col := 0; col < domain.Columns; col++ {
		r.screen.SetContent(boardLeft+col*cellWidth, base+1, rune('1'+col), nil, styleFrame)
	}
}

func (r *Renderer) drawEvents(snap game.Snapshot, top int) {
	for i, e := range snap.RecentEvents(r.messageLimit) {
		r.text(0, top+i, eventStyle(e.Kind), e.Text)
	}
}

func (r *Renderer) text(x, y int, style tcell.Style, s string) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func glyph(c domain.Color) rune {
	switch c {
	case domain.First:
		return 'X'
	case domain.Second:
		return 'O'
	}
	return '.'
}

func colorStyle(c domain.Color) tcell.Style {
	if c == domain.First {
		return styleFirst
	}
	return styleSecond
}

func eventStyle(kind game.EventKind) tcell.Style {
	switch kind {
	case game.EventWarning:
		return styleWarning
	case game.EventResult:
		return styleResult
	case game.EventComputer:
		return styleComputer
	}
	return styleDefault
}
