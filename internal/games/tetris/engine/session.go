package engine

import (
	"math/rand"
	"time"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// LockEvent describes one completed lock: merge, sweep, score.
type LockEvent struct {
	Kind    Kind
	Rows    int  // rows cleared by this lock
	Points  int  // line-clear points awarded
	Level   int  // level after the clear
	LevelUp bool // whether this clear raised the level
}

// Listener receives session events. Calls happen synchronously inside the
// command or tick that caused them, after the engine state is consistent.
type Listener interface {
	OnLock(LockEvent)
	OnGameOver(finalScore int)
}

// Session owns one game: board, active piece, queue, hold slot and
// progression. It is not safe for concurrent use; the platform serializes
// ticks and commands.
type Session struct {
	board    Board
	queue    *Queue
	hold     HoldSlot
	piece    Piece
	prog     Progression
	state    State
	gravity  time.Duration // time accumulated toward the next gravity step
	final    int
	listener Listener
}

// NewSession creates an idle session drawing pieces from rng.
func NewSession(rng *rand.Rand) *Session {
	return &Session{
		queue: NewQueue(NewBag(rng)),
		prog:  NewProgression(),
		state: StateIdle,
	}
}

// SetListener installs l as the event listener. nil removes it.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Start resets all game state, spawns the first piece and begins running.
func (s *Session) Start() {
	s.clear()
	s.state = StateRunning
	s.spawn(s.queue.Pop())
}

// Reset returns the session to Idle with fresh state.
func (s *Session) Reset() {
	s.clear()
	s.state = StateIdle
}

func (s *Session) clear() {
	s.board.Reset()
	s.queue.Reset()
	s.hold = HoldSlot{}
	s.piece = Piece{}
	s.prog = NewProgression()
	s.gravity = 0
	s.final = 0
}

// Pause suspends a running session.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
	}
}

// TogglePause flips between Running and Paused.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	}
}

// Tick advances gravity by elapsed. Once the accumulated time reaches the
// drop interval, one gravity step runs and the accumulator restarts at zero,
// whether the piece moved or locked. Ticks outside Running are ignored.
func (s *Session) Tick(elapsed time.Duration) {
	if s.state != StateRunning || elapsed < 0 {
		return
	}

	s.gravity += elapsed
	if s.gravity < s.prog.DropInterval() {
		return
	}
	s.gravity = 0
	if !s.descend() {
		s.lock()
	}
}

// Move shifts the piece dx columns. A colliding move is dropped.
func (s *Session) Move(dx int) bool {
	if s.state != StateRunning || dx == 0 {
		return false
	}
	next := s.piece.Translated(dx, 0)
	if s.board.Collides(next.Shape, next.Pos) {
		return false
	}
	s.piece = next
	return true
}

// Rotate turns the piece clockwise (dir > 0) or counter-clockwise (dir < 0),
// kicking sideways when the new orientation collides. It returns false when
// no kick fits and the piece is left as it was.
func (s *Session) Rotate(dir int) bool {
	if s.state != StateRunning || dir == 0 {
		return false
	}
	rotated, ok := s.piece.rotate(&s.board, dir)
	if ok {
		s.piece = rotated
	}
	return ok
}

// SoftDrop moves the piece one row down for 1 point. When the piece cannot
// descend it locks instead. Either way the gravity timer restarts.
func (s *Session) SoftDrop() bool {
	if s.state != StateRunning {
		return false
	}
	s.gravity = 0
	if s.descend() {
		s.prog.AddSoftDrop(1)
		return true
	}
	s.lock()
	return false
}

// HardDrop drops the piece to the floor, awards 2 points per row and locks
// immediately. It returns the number of rows descended.
func (s *Session) HardDrop() int {
	if s.state != StateRunning {
		return 0
	}
	rows := 0
	for s.descend() {
		rows++
	}
	s.prog.AddHardDrop(rows)
	s.lock()
	return rows
}

// Hold stores the active piece. With an empty slot the next queued piece
// spawns; otherwise the held kind swaps in at its spawn position. Hold is
// unavailable again until the next lock.
func (s *Session) Hold() bool {
	if s.state != StateRunning || s.hold.used {
		return false
	}

	current := s.piece.Kind
	swapIn := s.hold.kind
	if swapIn == KindNone {
		swapIn = s.queue.Pop()
	}
	s.hold = HoldSlot{kind: current, used: true}
	s.spawn(swapIn)
	return true
}

// EndGame stops the session and records the final score.
func (s *Session) EndGame() {
	if s.state == StateOver {
		return
	}
	s.state = StateOver
	s.final = s.prog.Score()
	if s.listener != nil {
		s.listener.OnGameOver(s.final)
	}
}

func (s *Session) descend() bool {
	next := s.piece.Translated(0, 1)
	if s.board.Collides(next.Shape, next.Pos) {
		return false
	}
	s.piece = next
	return true
}

// lock merges the piece, clears rows, scores them and spawns the next piece.
func (s *Session) lock() {
	kind := s.piece.Kind
	s.board.Merge(s.piece.Shape, s.piece.Pos, kind)

	rows := s.board.SweepRows()
	points, levelUp := s.prog.AddLines(rows)
	if s.listener != nil {
		s.listener.OnLock(LockEvent{
			Kind:    kind,
			Rows:    rows,
			Points:  points,
			Level:   s.prog.Level(),
			LevelUp: levelUp,
		})
	}

	s.spawn(s.queue.Pop())
	if s.state != StateOver {
		s.hold.used = false
	}
}

func (s *Session) spawn(kind Kind) {
	s.piece = NewPiece(kind)
	if s.board.Collides(s.piece.Shape, s.piece.Pos) {
		s.EndGame()
	}
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Running reports whether commands are being accepted.
func (s *Session) Running() bool { return s.state == StateRunning }

// Board returns the playfield for read-only use.
func (s *Session) Board() *Board { return &s.board }

// Active returns a copy of the falling piece.
func (s *Session) Active() Piece { return s.piece }

// Ghost returns where the active piece would land if hard-dropped now.
func (s *Session) Ghost() Point {
	pos := s.piece.Pos
	if s.piece.Kind == KindNone {
		return pos
	}
	for !s.board.Collides(s.piece.Shape, Point{Col: pos.Col, Row: pos.Row + 1}) {
		pos.Row++
	}
	return pos
}

// Preview returns the upcoming kinds, next first.
func (s *Session) Preview() [PreviewSize]Kind { return s.queue.Preview() }

// Held returns the kind in the hold slot, or KindNone.
func (s *Session) Held() Kind { return s.hold.Kind() }

// CanHold reports whether Hold would currently be accepted.
func (s *Session) CanHold() bool { return s.state == StateRunning && s.hold.Available() }

func (s *Session) Score() int                  { return s.prog.Score() }
func (s *Session) Lines() int                  { return s.prog.Lines() }
func (s *Session) Level() int                  { return s.prog.Level() }
func (s *Session) DropInterval() time.Duration { return s.prog.DropInterval() }

// FinalScore is the score recorded when the game ended; zero before that.
func (s *Session) FinalScore() int { return s.final }
