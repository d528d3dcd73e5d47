package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Display: DisplayConfig{
			Ghost:     true,
			ShowNext:  true,
			ShowHold:  true,
			CellWidth: 2,
		},
		Leaderboard: LeaderboardConfig{
			DefaultName: "PLAYER",
			ShowTop:     5,
		},
	}
}
