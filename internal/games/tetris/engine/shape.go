package engine

import (
	"fmt"
	"strings"
)

// MaxShapeSize is the side of the largest piece matrix (the I piece).
const MaxShapeSize = 4

// Shape is an immutable square piece matrix. Rotation returns a new value,
// so a rejected rotation is rolled back by simply keeping the old one.
type Shape struct {
	size  int
	cells [MaxShapeSize][MaxShapeSize]bool
}

// Offset is a filled cell position relative to a piece anchor.
type Offset struct {
	Row, Col int
}

// ParseShape builds a shape from rows where '#' is filled and any other
// rune is empty. Rows must form a square of side 1..MaxShapeSize.
func ParseShape(rows ...string) (Shape, error) {
	n := len(rows)
	if n == 0 || n > MaxShapeSize {
		return Shape{}, fmt.Errorf("engine: shape must have 1..%d rows, got %d", MaxShapeSize, n)
	}

	s := Shape{size: n}
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != n {
			return Shape{}, fmt.Errorf("engine: shape row %d has width %d, expected %d", r, len(runes), n)
		}
		for c, ch := range runes {
			s.cells[r][c] = ch == '#'
		}
	}
	return s, nil
}

// MustParseShape is ParseShape for package-level literals.
func MustParseShape(rows ...string) Shape {
	s, err := ParseShape(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the side length of the square matrix.
func (s Shape) Size() int {
	return s.size
}

// Width is the matrix width. Matrices are square, so this equals Size; it
// bounds the kick search in rotation.
func (s Shape) Width() int {
	return s.size
}

// Filled reports whether the cell at (row, col) is part of the piece.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || col < 0 || row >= s.size || col >= s.size {
		return false
	}
	return s.cells[row][col]
}

// Cells returns the offsets of all filled cells in row-major order.
func (s Shape) Cells() []Offset {
	out := make([]Offset, 0, 4)
	for r := 0; r < s.size; r++ {
		for c := 0; c < s.size; c++ {
			if s.cells[r][c] {
				out = append(out, Offset{Row: r, Col: c})
			}
		}
	}
	return out
}

// Rotate returns the shape turned a quarter: dir > 0 is clockwise
// (transpose, then reverse each row), dir < 0 is counter-clockwise
// (transpose, then reverse the row order). dir == 0 returns s unchanged.
func (s Shape) Rotate(dir int) Shape {
	if dir == 0 {
		return s
	}

	n := s.size
	out := Shape{size: n}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if dir > 0 {
				out.cells[r][c] = s.cells[n-1-c][r]
			} else {
				out.cells[r][c] = s.cells[c][n-1-r]
			}
		}
	}
	return out
}

// String renders the shape using '#' and '.', rows separated by newlines.
func (s Shape) String() string {
	var b strings.Builder
	for r := 0; r < s.size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < s.size; c++ {
			if s.cells[r][c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
