package bot

import (
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// NewSearcher selects the search for a difficulty.
func NewSearcher(difficulty string) (oracle.Searcher, error) {
	switch difficulty {
	case "easy":
		return NewEasy(time.Now().UnixNano()), nil
	case "medium":
		return Medium{}, nil
	case "hard", "":
		return Hard{}, nil
	}
	return nil, fmt.Errorf("unknown bot difficulty %q", difficulty)
}

// NewOracle wraps the difficulty's searcher in an asynchronous oracle.
func NewOracle(difficulty string) (*oracle.Async, error) {
	s, err := NewSearcher(difficulty)
	if err != nil {
		return nil, err
	}
	return oracle.NewAsync(GetBotName(difficulty), s), nil
}
