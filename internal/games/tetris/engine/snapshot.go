package engine

import "time"

// Snapshot captures the externally visible session state, for tests and
// debug output.
type Snapshot struct {
	State        State
	Score        int
	Lines        int
	Level        int
	DropInterval time.Duration
	Active       Kind
	Col          int
	Row          int
	GhostRow     int
	Held         Kind
	CanHold      bool
	Next         [PreviewSize]Kind
	Filled       int // occupied board cells
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:        s.state,
		Score:        s.prog.Score(),
		Lines:        s.prog.Lines(),
		Level:        s.prog.Level(),
		DropInterval: s.prog.DropInterval(),
		Active:       s.piece.Kind,
		Col:          s.piece.Pos.Col,
		Row:          s.piece.Pos.Row,
		GhostRow:     s.Ghost().Row,
		Held:         s.hold.Kind(),
		CanHold:      s.CanHold(),
		Next:         s.queue.Preview(),
		Filled:       s.board.Filled(),
	}
}
