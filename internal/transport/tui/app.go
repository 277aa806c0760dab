package tui

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
)

// App runs one session in the terminal. The loop goroutine owns drawing;
// the input goroutine only decodes keys and forwards intents.
type App struct {
	screen   tcell.Screen
	loop     *game.Loop
	renderer *Renderer
}

func NewApp(screen tcell.Screen, session *game.Session, cfg Config) *App {
	a := &App{
		screen:   screen,
		renderer: NewRenderer(screen, cfg.MessageLimit),
	}
	a.loop = game.NewLoop(session, cfg.TickInterval, func(snap game.Snapshot, _ bool) {
		a.renderer.Draw(snap)
	})
	return a
}

func (a *App) Loop() *game.Loop { return a.loop }

// Run blocks until the player quits or ctx is cancelled. The caller owns the
// screen and must Fini it afterwards.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.readInput(ctx, cancel)
	return a.loop.Run(ctx)
}

func (a *App) readInput(ctx context.Context, cancel context.CancelFunc) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.loop.Done():
			return
		case ev, ok := <-events:
			if !ok {
				cancel()
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				intent, ok := DecodeKey(ev)
				if !ok {
					continue
				}
				if !a.loop.Send(intent) {
					log.Printf("[TUI] Dropped %s intent, input queue full", intent)
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		}
	}
}
