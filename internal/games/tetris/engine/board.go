package engine

import "strings"

// Playfield dimensions.
const (
	Rows = 20
	Cols = 10
)

// Point is an anchor position on the board: the top-left corner of a piece
// matrix. Row may be negative while a piece is above the visible field.
type Point struct {
	Col, Row int
}

// Board is the grid of locked cells. Row 0 is the top row. Each cell holds
// the kind that locked there, or KindNone when empty.
type Board struct {
	cells [Rows][Cols]Kind
}

// Cell returns the kind locked at (row, col), or KindNone for empty and
// out-of-range cells.
func (b *Board) Cell(row, col int) Kind {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return KindNone
	}
	return b.cells[row][col]
}

// Set writes a single cell. Out-of-range writes are ignored.
func (b *Board) Set(row, col int, k Kind) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	b.cells[row][col] = k
}

// Grid returns a copy of the cell grid for read-only consumers.
func (b *Board) Grid() [Rows][Cols]Kind {
	return b.cells
}

// Reset clears every cell.
func (b *Board) Reset() {
	b.cells = [Rows][Cols]Kind{}
}

// Collides reports whether shape anchored at pos overlaps a wall, the floor
// or a locked cell. Cells above row 0 only collide with the side walls; the
// ceiling is open.
func (b *Board) Collides(shape Shape, pos Point) bool {
	for _, off := range shape.Cells() {
		row := pos.Row + off.Row
		col := pos.Col + off.Col

		if col < 0 || col >= Cols || row >= Rows {
			return true
		}
		if row < 0 {
			continue
		}
		if b.cells[row][col] != KindNone {
			return true
		}
	}
	return false
}

// Merge writes kind into every filled cell of shape anchored at pos. Cells
// falling outside the grid are dropped. Callers check Collides first.
func (b *Board) Merge(shape Shape, pos Point, kind Kind) {
	for _, off := range shape.Cells() {
		b.Set(pos.Row+off.Row, pos.Col+off.Col, kind)
	}
}

// SweepRows removes every full row, bottom to top, shifting the rows above
// down and inserting empty rows at the top. Row 0 is swept like any other.
// It returns the number of rows removed.
func (b *Board) SweepRows() int {
	cleared := 0
	for row := Rows - 1; row >= 0; {
		if !b.rowFull(row) {
			row--
			continue
		}
		for r := row; r > 0; r-- {
			b.cells[r] = b.cells[r-1]
		}
		b.cells[0] = [Cols]Kind{}
		cleared++
		// The row above has moved into this index, so check it again.
	}
	return cleared
}

// RowFull reports whether every column of row is occupied.
func (b *Board) RowFull(row int) bool {
	if row < 0 || row >= Rows {
		return false
	}
	return b.rowFull(row)
}

func (b *Board) rowFull(row int) bool {
	for _, k := range b.cells[row] {
		if k == KindNone {
			return false
		}
	}
	return true
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for r := range b.cells {
		for _, k := range b.cells[r] {
			if k != KindNone {
				n++
			}
		}
	}
	return n
}

// String dumps the board with kind letters and '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((Cols + 1) * Rows)
	for r := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, k := range b.cells[r] {
			if k == KindNone {
				sb.WriteByte('.')
			} else {
				sb.WriteString(k.String())
			}
		}
	}
	return sb.String()
}
