package engine

// Piece is the falling piece: its kind, current orientation and anchor.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   Point
}

// NewPiece returns kind in its spawn orientation, horizontally centered on
// row 0.
func NewPiece(kind Kind) Piece {
	shape := kind.Shape()
	return Piece{
		Kind:  kind,
		Shape: shape,
		Pos:   Point{Col: (Cols - shape.Width()) / 2, Row: 0},
	}
}

// Translated returns the piece shifted by dc columns and dr rows.
func (p Piece) Translated(dc, dr int) Piece {
	p.Pos.Col += dc
	p.Pos.Row += dr
	return p
}

// Cells returns the absolute board positions occupied by the piece.
func (p Piece) Cells() []Point {
	offs := p.Shape.Cells()
	out := make([]Point, len(offs))
	for i, off := range offs {
		out[i] = Point{Col: p.Pos.Col + off.Col, Row: p.Pos.Row + off.Row}
	}
	return out
}

// kickSteps yields the horizontal steps tried after a colliding rotation:
// +1, -2, +3, -4, ... up to the shape width in magnitude. Each step is
// applied on top of the previous ones, so the tested columns are
// +1, -1, +2, -2, ... relative to the starting anchor.
func kickSteps(width int) []int {
	steps := make([]int, 0, width)
	for m := 1; m <= width; m++ {
		if m%2 == 1 {
			steps = append(steps, m)
		} else {
			steps = append(steps, -m)
		}
	}
	return steps
}

// rotate computes the rotated piece with kick recovery against board.
// The second result is false when no offset fits; the piece is then
// returned unchanged.
func (p Piece) rotate(board *Board, dir int) (Piece, bool) {
	candidate := p
	candidate.Shape = p.Shape.Rotate(dir)

	if !board.Collides(candidate.Shape, candidate.Pos) {
		return candidate, true
	}
	for _, step := range kickSteps(candidate.Shape.Width()) {
		candidate.Pos.Col += step
		if !board.Collides(candidate.Shape, candidate.Pos) {
			return candidate, true
		}
	}
	return p, false
}
