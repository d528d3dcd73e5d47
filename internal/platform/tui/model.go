package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Phase is the screen the model is showing.
type Phase int

const (
	PhaseIdle    Phase = iota // Start screen
	PhasePlaying              // Game view, including pause
	PhaseOver                 // Final score and name entry
	PhaseScores               // Leaderboard table
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	case PhaseScores:
		return "scores"
	default:
		return "unknown"
	}
}

// storageTimeout bounds every leaderboard call made from the UI.
const storageTimeout = 3 * time.Second

// Options configures a Model.
type Options struct {
	Leaderboard storage.Leaderboard // nil disables score keeping
	Runtime     core.RuntimeConfig
	Config      config.TetrisConfig
	Logger      *log.Logger
	Player      string // Prefilled name, e.g. the SSH user
}

type scoresMsg struct {
	entries []storage.ScoreEntry
	err     error
}

type qualifyMsg struct {
	score int
	ok    bool
	err   error
}

type submitMsg struct {
	name  string
	score int
	err   error
}

// loggerSetter is implemented by games that accept a per-session logger.
type loggerSetter interface {
	SetLogger(*log.Logger)
}

// Model is the Bubble Tea model for one tetris session.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	board   storage.Leaderboard
	runtime core.RuntimeConfig
	cfg     config.TetrisConfig
	logger  *log.Logger
	keys    KeyMap
	help    help.Model

	input core.InputFrame
	state core.GameState
	phase Phase
	prev  Phase // where the score screen returns to

	name     textinput.Model
	entering bool
	table    scoreTable
	top      []storage.ScoreEntry
	pending  *submitMsg // entry to select once scores reload
	lastErr  error

	width    int
	height   int
	quitting bool
}

// NewModel creates a model around game and resets it for the configured
// screen.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if ls, ok := game.(loggerSetter); ok {
		ls.SetLogger(logger)
	}

	gameCfg := opts.Config
	if gameCfg == (config.TetrisConfig{}) {
		gameCfg = config.DefaultTetrisConfig()
	}

	name := textinput.New()
	name.Placeholder = gameCfg.Leaderboard.DefaultName
	name.CharLimit = storage.MaxNameLen
	name.Width = storage.MaxNameLen
	name.Prompt = "Name: "
	if opts.Player != "" {
		name.SetValue(opts.Player)
	}

	// The bottom line is reserved for help or name entry.
	screenH := max(cfg.ScreenH-1, 1)
	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.ScreenW,
		ScreenH:  screenH,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, screenH),
		board:   opts.Leaderboard,
		runtime: cfg,
		cfg:     gameCfg,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   core.NewInputFrame(),
		state:   game.State(),
		phase:   PhaseIdle,
		name:    name,
		table:   newScoreTable(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// Init starts the tick loop and loads the start-screen scores.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), m.loadScores())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case scoresMsg:
		m.lastErr = msg.err
		if msg.err != nil {
			m.logger.Warn("could not load scores", "error", msg.err)
			return m, nil
		}
		m.top = msg.entries
		highlight := -1
		if m.pending != nil {
			highlight = findEntry(msg.entries, m.pending.name, m.pending.score)
			m.pending = nil
		}
		m.table.SetEntries(msg.entries, highlight)
		return m, nil

	case qualifyMsg:
		if msg.err != nil {
			m.logger.Warn("could not check leaderboard", "error", msg.err)
			return m, nil
		}
		if msg.ok && m.phase == PhaseOver && msg.score == m.state.Score {
			m.entering = true
			cmd := m.name.Focus()
			return m, cmd
		}
		return m, nil

	case submitMsg:
		m.lastErr = msg.err
		if msg.err != nil {
			m.logger.Error("could not save score", "score", msg.score, "error", msg.err)
		} else {
			m.logger.Info("score saved", "name", msg.name, "score", msg.score)
			m.pending = &msg
		}
		m.prev = PhaseOver
		m.phase = PhaseScores
		return m, m.loadScores()
	}

	if m.entering {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses by phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseIdle:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.input.Set(core.ActionConfirm)
		case key.Matches(msg, m.keys.Scores):
			return m.openScores()
		}

	case PhasePlaying:
		action := m.keys.Action(msg)
		if action == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if action != core.ActionNone {
			m.input.Set(action)
		}

	case PhaseOver:
		if m.entering {
			return m.handleNameKey(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.input.Set(core.ActionRestart)
		case key.Matches(msg, m.keys.Scores), key.Matches(msg, m.keys.Start):
			return m.openScores()
		}

	case PhaseScores:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.phase = m.prev
		case key.Matches(msg, m.keys.Restart), key.Matches(msg, m.keys.Start):
			if m.state.Idle {
				m.input.Set(core.ActionConfirm)
			} else {
				m.input.Set(core.ActionRestart)
			}
		default:
			var cmd tea.Cmd
			m.table.table, cmd = m.table.table.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// handleNameKey feeds the name prompt; Enter submits, Esc skips.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.entering = false
		m.name.Blur()
		return m, m.submit(m.name.Value(), m.state.Score)
	case tea.KeyEsc:
		m.entering = false
		m.name.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleResize resizes the screen buffer. Games that can keep their state
// are resized, others are reset unless the round is over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.help.Width = msg.Width

	screenH := max(msg.Height-1, 1)
	m.screen.Resize(msg.Width, screenH)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, screenH)
	} else if !m.state.GameOver {
		cfg := m.runtime
		cfg.ScreenH = screenH
		m.game.Reset(cfg)
		m.state = m.game.State()
	}

	return m, nil
}

// handleTick steps the game and follows its lifecycle with the phase.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	before := m.state
	result := m.game.Step(m.input)
	m.input.Clear()
	m.state = result.State
	if result.Cleared > 0 {
		m.logger.Debug("rows cleared", "rows", result.Cleared, "lines", m.state.Lines, "score", m.state.Score)
	}

	next := tickCmd(m.runtime.TickRate)

	switch {
	case m.state.GameOver && !before.GameOver:
		m.phase = PhaseOver
		m.entering = false
		m.logger.Info("round finished", "score", m.state.Score, "lines", m.state.Lines, "level", m.state.Level)
		return m, tea.Batch(next, m.checkQualifies(m.state.Score))

	case !m.state.GameOver && !m.state.Idle && m.phase != PhasePlaying:
		m.phase = PhasePlaying
		m.entering = false
		m.name.Blur()
	}

	return m, next
}

func (m Model) openScores() (tea.Model, tea.Cmd) {
	m.prev = m.phase
	m.phase = PhaseScores
	return m, m.loadScores()
}

func (m Model) loadScores() tea.Cmd {
	board, gameID := m.board, m.game.ID()
	if board == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		entries, err := board.Top(ctx, gameID, storage.MaxEntries)
		return scoresMsg{entries: entries, err: err}
	}
}

func (m Model) checkQualifies(score int) tea.Cmd {
	board, gameID := m.board, m.game.ID()
	if board == nil || score <= 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		ok, err := board.Qualifies(ctx, gameID, score)
		return qualifyMsg{score: score, ok: ok, err: err}
	}
}

func (m Model) submit(name string, score int) tea.Cmd {
	board, gameID := m.board, m.game.ID()
	if board == nil {
		return nil
	}
	if strings.TrimSpace(name) == "" {
		name = m.cfg.Leaderboard.DefaultName
	}
	name = storage.NormalizeName(name)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		err := board.Submit(ctx, gameID, name, score)
		return submitMsg{name: name, score: score, err: err}
	}
}

// Phase returns the current screen.
func (m Model) Phase() Phase { return m.phase }

// State returns the last game state seen by the model.
func (m Model) State() core.GameState { return m.state }

// Entering reports whether the name prompt is active.
func (m Model) Entering() bool { return m.entering }

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseIdle:
		return m.viewIdle()
	case PhaseScores:
		return m.viewScores()
	}

	m.game.Render(m.screen)
	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteByte('\n')

	switch {
	case m.phase == PhaseOver && m.entering:
		b.WriteString(accentStyle.Render("New high score! "))
		b.WriteString(m.name.View())
	case m.phase == PhaseOver:
		b.WriteString(mutedStyle.Render(m.help.View(menuHelp{bindings: []key.Binding{
			m.keys.Restart, m.keys.Scores, m.keys.Quit,
		}})))
	default:
		b.WriteString(mutedStyle.Render(m.help.View(playHelp{k: m.keys})))
	}
	return b.String()
}

func (m Model) viewIdle() string {
	var lines []string
	lines = append(lines,
		"",
		titleStyle.Render("T E T R I S"),
		"",
		accentStyle.Render("Press Enter to start"),
		"",
	)

	if n := m.cfg.Leaderboard.ShowTop; n > 0 && m.board != nil {
		lines = append(lines, mutedStyle.Render("HIGH SCORES"))
		if len(m.top) == 0 {
			lines = append(lines, mutedStyle.Render("no scores yet"))
		}
		for i, e := range m.top {
			if i >= n {
				break
			}
			lines = append(lines, fmt.Sprintf("%2d. %-*s %8d", i+1, storage.MaxNameLen, e.Name, e.Score))
		}
		lines = append(lines, "")
	}

	lines = append(lines, mutedStyle.Render(m.help.View(menuHelp{bindings: []key.Binding{
		m.keys.Start, m.keys.Scores, m.keys.Quit,
	}})))

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewScores() string {
	parts := []string{
		"",
		titleStyle.Render("HIGH SCORES"),
		"",
		m.table.View(),
	}
	if m.lastErr != nil {
		parts = append(parts, errorStyle.Render("Error: "+m.lastErr.Error()))
	}
	parts = append(parts, "", mutedStyle.Render(m.help.View(menuHelp{bindings: []key.Binding{
		m.keys.Restart, m.keys.Back, m.keys.Quit,
	}})))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// Run starts a Bubble Tea program for game on the local terminal.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
