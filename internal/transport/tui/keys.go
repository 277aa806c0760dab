package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
)

// DecodeKey maps a key press to a game intent.
func DecodeKey(ev *tcell.EventKey) (game.Intent, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.IntentLeft, true
	case tcell.KeyRight:
		return game.IntentRight, true
	case tcell.KeyEnter:
		return game.IntentConfirm, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.IntentQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return game.IntentLeft, true
		case 'l', 'd':
			return game.IntentRight, true
		case ' ':
			return game.IntentConfirm, true
		case 'q', 'Q':
			return game.IntentQuit, true
		}
	}
	return 0, false
}
