package tui

import "time"

type Config struct {
	TickInterval time.Duration
	MessageLimit int
}
