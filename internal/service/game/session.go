package game

import (
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
)

const (
	DefaultSearchBudget = time.Second
	DefaultMaxEvents    = 64
)

const ErrOracleBusy domain.Error = "an oracle request is already outstanding"

// Direction moves the highlighted column.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	HumanColor   domain.Color
	SearchBudget time.Duration
	MaxEvents    int
	ComputerName string
	// Greeting lines are logged oldest first when the session starts.
	Greeting []string
}

// Session drives one human-versus-oracle game. It is not safe for concurrent
// use: a single loop goroutine calls every method, and nothing here blocks.
type Session struct {
	ID string

	board    domain.Board
	phase    Phase
	column   int
	human    domain.Color
	computer domain.Color

	oracle  oracle.Oracle
	pending oracle.Handle
	budget  time.Duration

	outcome  domain.Outcome
	over     bool
	quit     bool
	requests int

	events       *eventLog
	computerName string
	version      uint64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSession starts a game in AwaitingHumanInput with the human to move.
func NewSession(id string, o oracle.Oracle, opts Options) *Session {
	human := opts.HumanColor
	if !human.IsColor() {
		human = domain.First
	}
	budget := opts.SearchBudget
	if budget <= 0 {
		budget = DefaultSearchBudget
	}
	name := opts.ComputerName
	if name == "" {
		name = "AI"
	}

	now := time.Now()
	s := &Session{
		ID:           id,
		board:        domain.NewBoard(human.Opponent(), human),
		phase:        AwaitingHumanInput,
		column:       domain.Columns / 2,
		human:        human,
		computer:     human.Opponent(),
		oracle:       o,
		budget:       budget,
		events:       newEventLog(opts.MaxEvents),
		computerName: name,
		createdAt:    now,
		updatedAt:    now,
	}
	for _, line := range opts.Greeting {
		s.record(EventInfo, line)
	}
	return s
}

func (s *Session) Board() domain.Board { return s.board }
func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) Column() int         { return s.column }
func (s *Session) Quitted() bool       { return s.quit }
func (s *Session) Version() uint64     { return s.version }

// Requests is the number of oracle requests submitted so far.
func (s *Session) Requests() int { return s.requests }

// Outcome reports the result once the game is over.
func (s *Session) Outcome() (domain.Outcome, bool) {
	return s.outcome, s.over
}

// SelectColumn moves the highlight to the nearest legal column in dir. The
// highlight stays put when there is none.
func (s *Session) SelectColumn(dir Direction) bool {
	if s.quit || s.phase != AwaitingHumanInput {
		return false
	}
	for col := s.column + int(dir); col >= 0 && col < domain.Columns; col += int(dir) {
		if domain.IsLegal(s.board, col) {
			s.column = col
			s.touch()
			return true
		}
	}
	return false
}

// ConfirmMove drops the human's token into the highlighted column. It is
// ignored outside AwaitingHumanInput.
func (s *Session) ConfirmMove() bool {
	if s.quit || s.phase != AwaitingHumanInput {
		return false
	}
	if !domain.IsLegal(s.board, s.column) {
		panic(fmt.Errorf("%w: highlighted column %d", domain.ErrColumnFull, s.column))
	}

	col := s.column
	st := advance(s.phase, s.board, domain.Move{Color: s.human, Column: col})
	s.board = st.Board
	s.record(EventHuman, fmt.Sprintf("Playing to column %d", col+1))

	if st.Terminal {
		s.finish(st.Outcome)
		return true
	}

	s.reconcileColumn()
	if st.Submit {
		if s.pending != nil {
			panic(ErrOracleBusy)
		}
		s.pending = s.oracle.Submit(s.board, s.budget)
		s.requests++
	}
	s.phase = st.Phase
	s.touch()
	return true
}

// Tick polls the outstanding oracle request once. It never blocks.
func (s *Session) Tick() bool {
	if s.quit || s.phase != WaitingOnOracle || s.pending == nil {
		return false
	}
	if !s.pending.IsFinished() {
		return false
	}

	h := s.pending
	s.pending = nil
	res := h.Result()

	st := advance(s.phase, s.board, domain.Move{Color: s.computer, Column: res.Move.Column})
	s.board = st.Board
	s.record(EventComputer, fmt.Sprintf("%s plays to column %d after thinking for %d moves.",
		s.computerName, res.Move.Column+1, res.Iterations))

	if st.Terminal {
		s.finish(st.Outcome)
		return true
	}

	s.phase = st.Phase
	s.reconcileColumn()
	s.touch()
	return true
}

// Quit ends the session from any phase. An in-flight search is left to run
// out its budget; its result is never applied.
func (s *Session) Quit() {
	if s.quit {
		return
	}
	if s.pending != nil {
		log.Printf("[SESSION] %s quit while the oracle was still thinking", s.ID)
		s.record(EventWarning, fmt.Sprintf("Quit while %s was thinking; its move is discarded.", s.computerName))
		s.pending = nil
	}
	s.quit = true
	s.touch()
}

func (s *Session) finish(outcome domain.Outcome) {
	s.phase = GameOver
	s.outcome = outcome
	s.over = true

	switch {
	case outcome.IsWinFor(s.human):
		s.record(EventResult, "You win!")
	case outcome.IsWinFor(s.computer):
		s.record(EventResult, fmt.Sprintf("%s wins!", s.computerName))
	default:
		s.record(EventResult, "Tie")
	}
	log.Printf("[SESSION] %s finished: %s after %d moves", s.ID, outcome, s.board.MoveCount())
	s.touch()
}

// reconcileColumn moves the highlight to the lowest legal column if the
// current one filled up.
func (s *Session) reconcileColumn() {
	if domain.IsLegal(s.board, s.column) {
		return
	}
	if cols := domain.LegalColumns(s.board); len(cols) > 0 {
		s.column = cols[0]
	}
}

func (s *Session) record(kind EventKind, text string) {
	s.events.push(Event{Kind: kind, Text: text, At: time.Now()})
	s.touch()
}

func (s *Session) touch() {
	s.version++
	s.updatedAt = time.Now()
}
