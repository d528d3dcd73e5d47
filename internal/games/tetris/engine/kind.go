// Package engine implements the falling-block game state: the bag
// randomizer, the lookahead queue and hold slot, the playfield, the active
// piece transform rules and the scoring/level progression. It is pure logic:
// no I/O, no timers, no logging. The platform drives it through Session.Tick
// and the command methods.
package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies one of the seven tetrominoes. The zero value KindNone marks
// an empty board cell or an empty hold slot.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindZ
	KindT
)

// NumKinds is the number of playable piece kinds.
const NumKinds = 7

// Kinds lists every playable kind in canonical order.
var Kinds = [NumKinds]Kind{KindI, KindJ, KindL, KindO, KindS, KindZ, KindT}

var kindNames = [...]string{
	KindNone: "-",
	KindI:    "I",
	KindJ:    "J",
	KindL:    "L",
	KindO:    "O",
	KindS:    "S",
	KindZ:    "Z",
	KindT:    "T",
}

var kindColors = [...]core.Color{
	KindNone: core.ColorDefault,
	KindI:    core.ColorCyan,
	KindJ:    core.ColorBlue,
	KindL:    core.ColorOrange,
	KindO:    core.ColorYellow,
	KindS:    core.ColorGreen,
	KindZ:    core.ColorRed,
	KindT:    core.ColorMagenta,
}

// Spawn orientations, row 0 on top.
var kindShapes = [...]Shape{
	KindI: MustParseShape(
		"....",
		"####",
		"....",
		"....",
	),
	KindJ: MustParseShape(
		"#..",
		"###",
		"...",
	),
	KindL: MustParseShape(
		"..#",
		"###",
		"...",
	),
	KindO: MustParseShape(
		"##",
		"##",
	),
	KindS: MustParseShape(
		".##",
		"##.",
		"...",
	),
	KindZ: MustParseShape(
		"##.",
		".##",
		"...",
	),
	KindT: MustParseShape(
		".#.",
		"###",
		"...",
	),
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindT
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	if int(k) < len(kindColors) {
		return kindColors[k]
	}
	return core.ColorDefault
}

// Shape returns the kind's canonical spawn orientation.
// KindNone yields the empty shape.
func (k Kind) Shape() Shape {
	if !k.Valid() {
		return Shape{}
	}
	return kindShapes[k]
}

// ParseKind converts a single-letter name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindNone, false
}
