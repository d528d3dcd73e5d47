package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// newTestGame returns a reset game at 10 ticks per second so one gravity
// interval at level 1 is exactly ten steps.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 23, TickRate: 10, Seed: 42})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func render(g *Game) string {
	screen := core.NewScreen(80, 23)
	g.Render(screen)
	return screen.String()
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q is not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "tetris" || g.Title() != "Tetris" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestResetIsIdleUntilConfirm(t *testing.T) {
	g := newTestGame(t)

	if !g.State().Idle {
		t.Fatal("State().Idle = false after Reset")
	}
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionLeft, core.ActionHardDrop))
	}
	if !g.State().Idle || g.Snapshot().Filled != 0 {
		t.Fatal("idle game reacted to input")
	}

	res := g.Step(frame(core.ActionConfirm))
	if res.State.Idle || res.State.GameOver || res.State.Paused {
		t.Errorf("State after Confirm = %+v, expected running", res.State)
	}
	if res.State.Level != 1 {
		t.Errorf("Level = %d, expected 1", res.State.Level)
	}
}

func TestGravityFollowsTickRate(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	for i := 0; i < 9; i++ {
		g.Step(core.NewInputFrame())
	}
	if row := g.Snapshot().Row; row != 0 {
		t.Fatalf("Row = %d after 900ms, expected 0", row)
	}
	g.Step(core.NewInputFrame())
	if row := g.Snapshot().Row; row != 1 {
		t.Errorf("Row = %d after 1s, expected 1", row)
	}
}

func TestMovementActions(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	col := g.Snapshot().Col

	g.Step(frame(core.ActionLeft))
	if got := g.Snapshot().Col; got != col-1 {
		t.Errorf("Col = %d after Left, expected %d", got, col-1)
	}

	f := frame(core.ActionRight, core.ActionRight, core.ActionRight)
	g.Step(f)
	if got := g.Snapshot().Col; got != col+2 {
		t.Errorf("Col = %d after three Rights, expected %d", got, col+2)
	}
}

func TestSoftAndHardDropActions(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionSoftDrop))
	snap := g.Snapshot()
	if snap.Row != 1 || snap.Score != 1 {
		t.Fatalf("after SoftDrop row %d score %d, expected 1 1", snap.Row, snap.Score)
	}

	g.Step(frame(core.ActionHardDrop))
	snap = g.Snapshot()
	if snap.Filled != 4 {
		t.Errorf("Filled = %d after HardDrop, expected 4", snap.Filled)
	}
	if snap.Score <= 1 || snap.Score%2 != 1 {
		t.Errorf("Score = %d, expected 1 plus an even hard drop bonus", snap.Score)
	}
}

func TestHoldAction(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	first := g.Snapshot().Active

	g.Step(frame(core.ActionHold))
	snap := g.Snapshot()
	if snap.Held != first || snap.CanHold {
		t.Errorf("after Hold: held %v canHold %v, expected %v false", snap.Held, snap.CanHold, first)
	}
}

func TestPauseSuppressesInput(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	before := g.Snapshot()

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("State().Paused = false after Pause")
	}
	for i := 0; i < 50; i++ {
		g.Step(frame(core.ActionLeft, core.ActionSoftDrop, core.ActionHardDrop))
	}
	after := g.Snapshot()
	if after.Col != before.Col || after.Row != before.Row || after.Filled != 0 {
		t.Errorf("paused game changed: before %+v after %+v", before, after)
	}
	if !strings.Contains(render(g), "PAUSED") {
		t.Error("paused overlay not rendered")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause did not resume")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	st := g.State()
	if !st.GameOver {
		t.Fatal("stacking hard drops did not end the game")
	}
	if st.Score == 0 {
		t.Error("final score should include hard drop points")
	}
	if !strings.Contains(render(g), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}

	// Restart is ignored while running, honored once over.
	res := g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.Idle || res.State.Score != 0 {
		t.Errorf("State after Restart = %+v, expected a fresh running game", res.State)
	}
	if g.Snapshot().Filled != 0 {
		t.Error("board not cleared on restart")
	}
}

func TestRenderStartScreen(t *testing.T) {
	g := newTestGame(t)
	out := render(g)

	for _, want := range []string{"T E T R I S", "Press Enter", "HOLD", "NEXT", "SCORE", "LEVEL", "LINES"} {
		if !strings.Contains(out, want) {
			t.Errorf("start screen missing %q:\n%s", want, out)
		}
	}
	if strings.ContainsRune(out, blockRune) {
		t.Error("start screen should not show pieces")
	}
}

func TestRenderPlayfield(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	out := render(g)

	// Four cells, two columns each, for the active piece and its ghost.
	if n := strings.Count(out, string(blockRune)); n < 8 {
		t.Errorf("found %d block runes, expected the active piece and next queue", n)
	}
	if n := strings.Count(out, string(ghostRune)); n != 8 {
		t.Errorf("found %d ghost runes, expected 8", n)
	}
	if strings.Contains(out, "Press Enter") {
		t.Error("idle overlay still shown while running")
	}
}

func TestRenderGhostDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("display:\n  ghost: false\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 23, TickRate: 10, Seed: 42})
	g.Step(frame(core.ActionConfirm))

	if strings.ContainsRune(render(g), ghostRune) {
		t.Error("ghost drawn although disabled in config")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t)
	g.Resize(30, 10)
	g.Step(frame(core.ActionConfirm))

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("too-small message not rendered:\n%s", screen.String())
	}

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Snapshot().Row != 0 {
		t.Error("gravity ran while the screen was too small")
	}

	g.Resize(80, 23)
	if strings.Contains(render(g), "Window too small") {
		t.Error("too-small message persisted after resize")
	}
}

func TestLineClearBanner(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	g.OnLock(engine.LockEvent{Kind: engine.KindI, Rows: 4, Points: 1200, Level: 1})
	if !strings.Contains(render(g), "TETRIS!") {
		t.Fatal("tetris banner not rendered")
	}

	for i := 0; i < 15; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.flash != "" {
		t.Errorf("banner %q still visible after %v", g.flash, flashDuration)
	}
}

func TestClearName(t *testing.T) {
	tests := []struct {
		rows     int
		expected string
	}{
		{1, "SINGLE"},
		{2, "DOUBLE"},
		{3, "TRIPLE"},
		{4, "TETRIS!"},
	}
	for _, tc := range tests {
		if got := clearName(tc.rows); got != tc.expected {
			t.Errorf("clearName(%d) = %q, expected %q", tc.rows, got, tc.expected)
		}
	}
}

func TestStepReportsClearedRows(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	// Fill the floor everywhere the active piece will not land.
	active := g.session.Active()
	landed := active.Translated(0, g.session.Ghost().Row-active.Pos.Row)
	open := make(map[int]bool)
	for _, p := range landed.Cells() {
		if p.Row == engine.Rows-1 {
			open[p.Col] = true
		}
	}
	for c := 0; c < engine.Cols; c++ {
		if !open[c] {
			g.session.Board().Set(engine.Rows-1, c, engine.KindJ)
		}
	}

	if res := g.Step(core.NewInputFrame()); res.Cleared != 0 {
		t.Errorf("Step().Cleared = %d without a lock, expected 0", res.Cleared)
	}
	res := g.Step(frame(core.ActionHardDrop))
	if res.Cleared != 1 {
		t.Errorf("Step().Cleared = %d, expected 1", res.Cleared)
	}
	if res.State.Lines != 1 {
		t.Errorf("State.Lines = %d, expected 1", res.State.Lines)
	}
}
