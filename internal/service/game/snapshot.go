package game

import (
	"time"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
)

// Snapshot is a read-only copy of everything the presentation layer draws.
type Snapshot struct {
	SessionID   string         `json:"sessionId"`
	Board       domain.Board   `json:"-"`
	Grid        [][]int        `json:"board"`
	Phase       Phase          `json:"phase"`
	Column      int            `json:"column"`
	LandingRow  int            `json:"landingRow"`
	HumanColor  domain.Color   `json:"humanColor"`
	NextMover   domain.Color   `json:"nextMover"`
	MoveCount   int            `json:"moveCount"`
	Events      []Event        `json:"events"`
	Terminal    bool           `json:"terminal"`
	Outcome     string         `json:"outcome,omitempty"`
	WinningLine []domain.Point `json:"winningLine,omitempty"`
	Quit        bool           `json:"quit"`
	Version     uint64         `json:"version"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:  s.ID,
		Board:      s.board,
		Grid:       s.board.Grid(),
		Phase:      s.phase,
		Column:     s.column,
		LandingRow: -1,
		HumanColor: s.human,
		NextMover:  s.board.NextMover(),
		MoveCount:  s.board.MoveCount(),
		Events:     s.events.snapshot(),
		Terminal:   s.over,
		Quit:       s.quit,
		Version:    s.version,
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
	if row, ok := domain.DropRow(s.board, s.column); ok {
		snap.LandingRow = row
	}
	if s.over {
		snap.Outcome = s.outcome.String()
		if line, _, ok := domain.WinningLine(s.board); ok {
			snap.WinningLine = line[:]
		}
	}
	return snap
}

// RecentEvents returns at most n events, most recent first.
func (s Snapshot) RecentEvents(n int) []Event {
	if n < 0 || n >= len(s.Events) {
		return s.Events
	}
	return s.Events[:n]
}
