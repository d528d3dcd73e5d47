// Package config provides YAML-based game configuration loading and the
// environment-driven server configuration for the tetris platform.
package config

// TetrisConfig contains all presentation and leaderboard settings for the
// tetris game. Gameplay constants (board size, scoring, speed curve) are
// fixed by the engine and are not configurable.
type TetrisConfig struct {
	Display     DisplayConfig     `yaml:"display"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// DisplayConfig controls what the renderer draws.
type DisplayConfig struct {
	Ghost     bool `yaml:"ghost"`      // Draw the landing preview
	ShowNext  bool `yaml:"show_next"`  // Draw the next-piece panel
	ShowHold  bool `yaml:"show_hold"`  // Draw the hold panel
	CellWidth int  `yaml:"cell_width"` // Terminal columns per board cell (1 or 2)
}

// LeaderboardConfig holds name entry and scoreboard display settings.
type LeaderboardConfig struct {
	DefaultName string `yaml:"default_name"` // Prefilled in the name prompt
	ShowTop     int    `yaml:"show_top"`     // Entries listed on the start screen
}

// Normalize clamps out-of-range values to usable ones.
func (c *TetrisConfig) Normalize() {
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 2 {
		c.Display.CellWidth = 2
	}
	if c.Leaderboard.ShowTop < 0 {
		c.Leaderboard.ShowTop = 0
	}
	if c.Leaderboard.ShowTop > 10 {
		c.Leaderboard.ShowTop = 10
	}
}
