package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

func firstColumn() oracle.Oracle {
	return oracle.NewAsync("first", oracle.SearcherFunc(func(ctx context.Context, b domain.Board) (domain.Move, int) {
		return domain.AllLegalMoves(b)[0], 1
	}))
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 30)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y, width int) string {
	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		out = append(out, runeAt(s, x, y))
	}
	return string(out)
}

func TestDecodeKey(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want game.Intent
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.IntentLeft, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.IntentRight, true},
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), game.IntentLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), game.IntentRight, true},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.IntentConfirm, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.IntentConfirm, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.IntentQuit, true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), game.IntentQuit, true},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}
	for _, tc := range cases {
		got, ok := DecodeKey(tc.ev)
		assert.Equal(t, tc.ok, ok, tc.ev.Name())
		assert.Equal(t, tc.want, got, tc.ev.Name())
	}
}

func TestRendererDrawsCursorAndLanding(t *testing.T) {
	screen := newScreen(t)
	s := game.NewSession("t", firstColumn(), game.Options{Greeting: []string{"Welcome"}})
	r := NewRenderer(screen, 5)

	r.Draw(s.Snapshot())

	cursorX := boardLeft + 3*cellWidth
	assert.Equal(t, 'X', runeAt(screen, cursorX, boardTop-1))
	assert.Equal(t, '+', runeAt(screen, cursorX, boardTop+domain.Rows-1))
	assert.Equal(t, '.', runeAt(screen, cursorX, boardTop))
	assert.Contains(t, rowText(screen, boardTop+domain.Rows+2, 20), "Welcome")
	assert.Contains(t, rowText(screen, 1, 40), "Your move")
}

func TestRendererShowsSpinnerAndDiscs(t *testing.T) {
	screen := newScreen(t)
	s := game.NewSession("t", firstColumn(), game.Options{SearchBudget: time.Second})
	require.True(t, s.ConfirmMove())

	r := NewRenderer(screen, 5)
	r.Draw(s.Snapshot())

	assert.Contains(t, rowText(screen, 1, 40), "Thinking")
	assert.Equal(t, 'X', runeAt(screen, boardLeft+3*cellWidth, boardTop+domain.Rows-1))
	// no cursor while the computer moves
	assert.Equal(t, ' ', runeAt(screen, boardLeft+3*cellWidth, boardTop-1))
}

func TestAppPlaysAndQuits(t *testing.T) {
	screen := newScreen(t)
	s := game.NewSession("t", firstColumn(), game.Options{SearchBudget: 50 * time.Millisecond})
	app := NewApp(screen, s, Config{TickInterval: time.Millisecond, MessageLimit: 5})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return app.Loop().Snapshot().MoveCount == 2
	}, 2*time.Second, 5*time.Millisecond)

	snap := app.Loop().Snapshot()
	assert.Equal(t, domain.First, snap.Board.CellAt(4, domain.Rows-1))
	assert.Equal(t, domain.Second, snap.Board.CellAt(0, domain.Rows-1))

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, app.Loop().Snapshot().Quit)
}
