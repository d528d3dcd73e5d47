// Package tetris adapts the falling-block engine to the platform layer:
// it maps input frames to engine commands, drives gravity with the fixed
// tick duration and renders the playfield into a core.Screen.
package tetris

import (
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and leaderboard id.
const GameID = "tetris"

// How long a line-clear or level-up banner stays visible.
const flashDuration = 1500 * time.Millisecond

// Package-level settings applied to games created afterwards.
var (
	configPath    string
	defaultLogger = log.New(io.Discard)
)

// SetConfigPath sets the YAML config path used by Reset. Empty means the
// default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// Game implements registry.Game for tetris.
type Game struct {
	session *engine.Session
	cfg     config.TetrisConfig
	logger  *log.Logger

	tick     uint64
	tickDur  time.Duration
	screenW  int
	screenH  int
	tooSmall bool

	flash     string
	flashLeft time.Duration
	cleared   int // rows cleared during the current step
}

var _ registry.Game = (*Game)(nil)
var _ registry.Resizable = (*Game)(nil)

// New creates an unstarted game; call Reset before use.
func New() *Game {
	return &Game{
		cfg:    config.DefaultTetrisConfig(),
		logger: defaultLogger,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// SetLogger replaces the logger for this game only.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset loads configuration and prepares an idle session. The session
// starts on Confirm.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	loaded, err := config.LoadTetris(configPath)
	if err != nil {
		g.logger.Warn("using default tetris config", "path", configPath, "error", err)
		loaded = config.DefaultTetrisConfig()
	}
	g.cfg = loaded

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session = engine.NewSession(rand.New(rand.NewSource(seed)))
	g.session.SetListener(g)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.flash = ""
	g.flashLeft = 0
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.logger.Debug("tetris reset", "seed", seed, "tick", g.tickDur)
}

// Resize adapts the layout to a new screen size, keeping the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	w, h := g.requiredSize()
	g.tooSmall = width < w || height < h
}

// Step applies the frame's actions and advances gravity by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.cleared = 0
	s := g.session

	switch {
	case in.Has(core.ActionRestart) && s.State() == engine.StateOver:
		g.start()
		return g.result()
	case in.Has(core.ActionConfirm) && s.State() == engine.StateIdle:
		g.start()
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.tooSmall {
		s.TogglePause()
	}

	// Hold the game while the playfield cannot be shown
	if g.tooSmall || !s.Running() {
		return g.result()
	}

	g.applyCommands(in)
	if s.Running() {
		s.Tick(g.tickDur)
	}
	g.advanceFlash()

	return g.result()
}

func (g *Game) start() {
	g.flash = ""
	g.flashLeft = 0
	g.session.Start()
	g.logger.Info("game started")
}

// applyCommands runs rotations and hold before moves so a piece can be
// turned and shifted in the same tick; drops go last because they lock.
func (g *Game) applyCommands(in core.InputFrame) {
	s := g.session

	if in.Has(core.ActionHold) {
		s.Hold()
	}
	for i, n := 0, in.Count(core.ActionRotateCW); i < n; i++ {
		s.Rotate(1)
	}
	for i, n := 0, in.Count(core.ActionRotateCCW); i < n; i++ {
		s.Rotate(-1)
	}
	for i, n := 0, in.Count(core.ActionLeft); i < n; i++ {
		s.Move(-1)
	}
	for i, n := 0, in.Count(core.ActionRight); i < n; i++ {
		s.Move(1)
	}
	for i, n := 0, in.Count(core.ActionSoftDrop); i < n; i++ {
		if !s.SoftDrop() {
			break
		}
	}
	if in.Has(core.ActionHardDrop) && s.Running() {
		s.HardDrop()
	}
}

func (g *Game) advanceFlash() {
	if g.flashLeft <= 0 {
		return
	}
	g.flashLeft -= g.tickDur
	if g.flashLeft <= 0 {
		g.flash = ""
	}
}

// OnLock logs the lock and raises a banner for clears and level-ups.
func (g *Game) OnLock(e engine.LockEvent) {
	g.logger.Debug("piece locked", "kind", e.Kind, "rows", e.Rows, "points", e.Points)

	g.cleared += e.Rows
	if e.Rows > 0 {
		g.setFlash(clearName(e.Rows))
	}
	if e.LevelUp {
		g.logger.Info("level up", "level", e.Level, "interval", engine.DropIntervalForLevel(e.Level))
		g.setFlash("LEVEL " + strconv.Itoa(e.Level))
	}
}

// OnGameOver logs the final result.
func (g *Game) OnGameOver(finalScore int) {
	g.logger.Info("game over",
		"score", finalScore,
		"lines", g.session.Lines(),
		"level", g.session.Level(),
	)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Cleared: g.cleared}
}

func (g *Game) setFlash(text string) {
	g.flash = text
	g.flashLeft = flashDuration
}

func clearName(rows int) string {
	switch rows {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "TETRIS!"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Idle: true}
	}
	st := g.session.State()
	score := g.session.Score()
	if st == engine.StateOver {
		score = g.session.FinalScore()
	}
	return core.GameState{
		Score:    score,
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		Idle:     st == engine.StateIdle,
		GameOver: st == engine.StateOver,
		Paused:   st == engine.StatePaused,
	}
}

// Snapshot exposes the engine state for debugging and tests.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Snapshot()
}
