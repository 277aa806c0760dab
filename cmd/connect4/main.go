package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/iamasit07/4-in-a-row/solo/internal/config"
	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
	"github.com/iamasit07/4-in-a-row/solo/internal/transport/tui"
	"github.com/iamasit07/4-in-a-row/solo/pkg/uid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "connect4:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	human, ok := domain.ParseColor(cfg.HumanColor)
	if !ok {
		return errors.Errorf("invalid HUMAN_COLOR %q", cfg.HumanColor)
	}

	// Log lines would corrupt the screen, so they go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	o, err := bot.NewOracle(cfg.BotDifficulty)
	if err != nil {
		return err
	}
	name := bot.GetBotName(cfg.BotDifficulty)
	session := game.NewSession(uid.GenerateGameID(), o, game.Options{
		HumanColor:   human,
		SearchBudget: cfg.SearchBudget,
		MaxEvents:    cfg.MaxEvents,
		ComputerName: name,
		Greeting: []string{
			fmt.Sprintf("You play %s against %s (%s).", human, name, cfg.BotDifficulty),
			"Use <- and -> to pick a column, Enter to drop, q to quit.",
		},
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Printf("[TUI] panic: %v", r)
			err = errors.Errorf("panic: %v", r)
			return
		}
		screen.Fini()
	}()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := tui.NewApp(screen, session, tui.Config{TickInterval: cfg.TickInterval, MessageLimit: cfg.MessageLimit})
	log.Printf("[TUI] Session %s started against %s", session.ID, name)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	final := app.Loop().Snapshot()
	if final.Terminal {
		log.Printf("[TUI] Session %s finished: %s", session.ID, final.Outcome)
	}
	return nil
}
