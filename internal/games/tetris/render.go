package tetris

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'

	nextBoxRows = 3*engine.PreviewSize + 1
)

// layout holds screen positions computed for the current size and config.
type layout struct {
	cellW  int
	panelW int
	boardW int
	boardH int
	leftX  int
	boardX int
	rightX int
	top    int
}

func (g *Game) layout() layout {
	cellW := g.cfg.Display.CellWidth
	if cellW < 1 {
		cellW = 2
	}
	l := layout{
		cellW:  cellW,
		panelW: max(4*cellW+2, 10),
		boardW: engine.Cols*cellW + 2,
		boardH: engine.Rows + 2,
		top:    1,
	}
	total := 2*l.panelW + l.boardW + 2
	l.leftX = max(0, (g.screenW-total)/2)
	l.boardX = l.leftX + l.panelW + 1
	l.rightX = l.boardX + l.boardW + 1
	return l
}

// requiredSize returns the smallest screen that fits the playfield.
func (g *Game) requiredSize() (int, int) {
	l := g.layout()
	return 2*l.panelW + l.boardW + 2, l.top + l.boardH
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := g.requiredSize()
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small")
		dst.DrawTextCentered(mid, fmt.Sprintf("Need at least %dx%d", w, h))
		return
	}
	if g.session == nil {
		return
	}

	l := g.layout()
	dst.DrawTextCentered(0, "T E T R I S")

	g.renderBoard(dst, l)
	g.renderHold(dst, l)
	g.renderStats(dst, l)
	g.renderNext(dst, l)

	switch g.session.State() {
	case engine.StateIdle:
		g.renderOverlay(dst, l, "TETRIS", "", "Press Enter", "to start")
	case engine.StatePaused:
		g.renderOverlay(dst, l, "PAUSED", "", "Press P", "to continue")
	case engine.StateOver:
		g.renderOverlay(dst, l, "GAME OVER", "",
			fmt.Sprintf("Score %d", g.session.FinalScore()), "", "Press R", "to restart")
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	s := g.session
	dst.DrawBox(core.NewRect(l.boardX, l.top, l.boardW, l.boardH), core.ColorGray)

	grid := s.Board().Grid()
	for row := 0; row < engine.Rows; row++ {
		for col := 0; col < engine.Cols; col++ {
			if k := grid[row][col]; k != engine.KindNone {
				g.drawCell(dst, l, col, row, blockRune, k.Color())
			} else {
				g.drawEmpty(dst, l, col, row)
			}
		}
	}

	if !s.Running() && s.State() != engine.StatePaused {
		return
	}

	piece := s.Active()
	if piece.Kind == engine.KindNone {
		return
	}

	if g.cfg.Display.Ghost {
		ghost := s.Ghost()
		if ghost.Row != piece.Pos.Row {
			landed := piece
			landed.Pos = ghost
			for _, p := range landed.Cells() {
				g.drawCell(dst, l, p.Col, p.Row, ghostRune, core.ColorGray)
			}
		}
	}

	for _, p := range piece.Cells() {
		g.drawCell(dst, l, p.Col, p.Row, blockRune, piece.Kind.Color())
	}
}

// drawCell paints one board cell; rows above the visible field are skipped.
func (g *Game) drawCell(dst *core.Screen, l layout, col, row int, r rune, c core.Color) {
	if row < 0 || row >= engine.Rows || col < 0 || col >= engine.Cols {
		return
	}
	x := l.boardX + 1 + col*l.cellW
	y := l.top + 1 + row
	for i := 0; i < l.cellW; i++ {
		dst.SetCell(x+i, y, r, c)
	}
}

func (g *Game) drawEmpty(dst *core.Screen, l layout, col, row int) {
	x := l.boardX + 1 + col*l.cellW
	y := l.top + 1 + row
	dst.SetCell(x+l.cellW-1, y, emptyRune, core.ColorDim)
}

func (g *Game) renderHold(dst *core.Screen, l layout) {
	if !g.cfg.Display.ShowHold {
		return
	}
	box := core.NewRect(l.leftX, l.top, l.panelW, 4)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawText(box.X+1, box.Y, "HOLD")

	held := g.session.Held()
	if held == engine.KindNone {
		return
	}
	color := held.Color()
	if !g.session.CanHold() {
		color = core.ColorGray
	}
	g.drawMini(dst, l, held, box.X, box.Y+1, color)
}

func (g *Game) renderStats(dst *core.Screen, l layout) {
	y := l.top
	if g.cfg.Display.ShowHold {
		y += 5
	}
	st := g.State()
	stats := []struct {
		label string
		value int
	}{
		{"SCORE", st.Score},
		{"LEVEL", st.Level},
		{"LINES", st.Lines},
	}
	for i, s := range stats {
		dst.DrawTextColor(l.leftX+1, y+i*3, s.label, core.ColorGray)
		dst.DrawText(l.leftX+1, y+i*3+1, fmt.Sprintf("%d", s.value))
	}
}

func (g *Game) renderNext(dst *core.Screen, l layout) {
	y := l.top
	if g.cfg.Display.ShowNext {
		box := core.NewRect(l.rightX, l.top, l.panelW, nextBoxRows+1)
		dst.DrawBox(box, core.ColorGray)
		dst.DrawText(box.X+1, box.Y, "NEXT")

		// Idle sessions have a queue too, but showing it would leak the
		// first pieces before the game starts.
		if g.session.State() != engine.StateIdle {
			for i, k := range g.session.Preview() {
				g.drawMini(dst, l, k, box.X, box.Y+1+i*3, k.Color())
			}
		}
		y = box.Bottom() + 1
	}
	if g.flash != "" {
		dst.DrawTextColor(l.rightX+1, y, g.flash, core.ColorYellow)
	}
}

// drawMini draws kind's spawn orientation trimmed to its filled rows,
// centered in a panel whose left border is at x.
func (g *Game) drawMini(dst *core.Screen, l layout, kind engine.Kind, x, y int, c core.Color) {
	cells := kind.Shape().Cells()
	if len(cells) == 0 {
		return
	}
	minRow, minCol, maxCol := cells[0].Row, cells[0].Col, cells[0].Col
	for _, off := range cells {
		minRow = min(minRow, off.Row)
		minCol = min(minCol, off.Col)
		maxCol = max(maxCol, off.Col)
	}
	width := (maxCol - minCol + 1) * l.cellW
	startX := x + 1 + (l.panelW-2-width)/2

	for _, off := range cells {
		cx := startX + (off.Col-minCol)*l.cellW
		for i := 0; i < l.cellW; i++ {
			dst.SetCell(cx+i, y+off.Row-minRow, blockRune, c)
		}
	}
}

// renderOverlay clears a band across the board and centers lines in it.
func (g *Game) renderOverlay(dst *core.Screen, l layout, lines ...string) {
	innerW := l.boardW - 2
	height := len(lines) + 2
	y0 := l.top + 1 + (engine.Rows-height)/2

	dst.FillRect(core.NewRect(l.boardX+1, y0, innerW, height), ' ', core.ColorDefault)
	for i, line := range lines {
		x := l.boardX + 1 + (innerW-utf8.RuneCountInString(line))/2
		dst.DrawTextColor(x, y0+1+i, line, core.ColorWhite)
	}
}
