package engine

import "time"

// Speed curve and scoring constants.
const (
	StartLevel       = 1
	LinesPerLevel    = 10
	BaseDropInterval = 1000 * time.Millisecond
	DropIntervalStep = 80 * time.Millisecond
	MinDropInterval  = 100 * time.Millisecond

	SoftDropPoints = 1 // per row moved by the player
	HardDropPoints = 2 // per row descended
)

// Base points per simultaneous line clear, indexed by row count.
var lineClearPoints = [...]int{0, 40, 100, 300, 1200}

// DropIntervalForLevel returns the gravity interval at level: linear
// speed-up of DropIntervalStep per level, clamped at MinDropInterval.
func DropIntervalForLevel(level int) time.Duration {
	if level < StartLevel {
		level = StartLevel
	}
	return max(MinDropInterval, BaseDropInterval-time.Duration(level-1)*DropIntervalStep)
}

// LineClearPoints returns the award for clearing rows at once on level.
func LineClearPoints(rows, level int) int {
	if rows <= 0 {
		return 0
	}
	rows = min(rows, len(lineClearPoints)-1)
	return lineClearPoints[rows] * level
}

// Progression tracks score, cleared lines, level and the drop interval.
// All four only move in one direction over a game.
type Progression struct {
	score    int
	lines    int
	level    int
	interval time.Duration
}

// NewProgression returns the state at the start of a game.
func NewProgression() Progression {
	return Progression{
		level:    StartLevel,
		interval: DropIntervalForLevel(StartLevel),
	}
}

func (p *Progression) Score() int                  { return p.score }
func (p *Progression) Lines() int                  { return p.lines }
func (p *Progression) Level() int                  { return p.level }
func (p *Progression) DropInterval() time.Duration { return p.interval }

// AddSoftDrop awards points for rows moved down by the player.
func (p *Progression) AddSoftDrop(rows int) {
	if rows > 0 {
		p.score += rows * SoftDropPoints
	}
}

// AddHardDrop awards points for rows descended by a hard drop.
func (p *Progression) AddHardDrop(rows int) {
	if rows > 0 {
		p.score += rows * HardDropPoints
	}
}

// AddLines scores a clear of rows lines at the current level, then advances
// the level and speed. It returns the points awarded and whether the level
// went up. Zero rows changes nothing.
func (p *Progression) AddLines(rows int) (points int, levelUp bool) {
	if rows <= 0 {
		return 0, false
	}

	points = LineClearPoints(rows, p.level)
	p.score += points
	p.lines += rows

	if next := p.lines/LinesPerLevel + StartLevel; next > p.level {
		p.level = next
		p.interval = DropIntervalForLevel(next)
		levelUp = true
	}
	return points, levelUp
}
