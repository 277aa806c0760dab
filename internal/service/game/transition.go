package game

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

// Phase is the orchestrator state.
type Phase int

const (
	AwaitingHumanInput Phase = iota
	WaitingOnOracle
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingHumanInput:
		return "awaiting_human_input"
	case WaitingOnOracle:
		return "waiting_on_oracle"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{AwaitingHumanInput, WaitingOnOracle, GameOver} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// step is the result of applying one move in a given phase.
type step struct {
	Board    domain.Board
	Phase    Phase
	Outcome  domain.Outcome
	Terminal bool
	// Submit asks the caller to hand Board to the oracle.
	Submit bool
}

// advance applies m to board and decides where the state machine goes next.
// It has no side effects; the Session acts on Submit.
func advance(from Phase, board domain.Board, m domain.Move) step {
	if from == GameOver {
		panic(domain.ErrInvalidMove)
	}
	if !domain.IsLegal(board, m.Column) {
		panic(domain.ErrColumnFull)
	}

	next := domain.ApplyMove(board, m)
	if outcome, over := domain.TerminalOutcome(next); over {
		return step{Board: next, Phase: GameOver, Outcome: outcome, Terminal: true}
	}

	if from == AwaitingHumanInput {
		return step{Board: next, Phase: WaitingOnOracle, Submit: true}
	}
	return step{Board: next, Phase: AwaitingHumanInput}
}
