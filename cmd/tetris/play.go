package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play tetris in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right, h/l  - Move
  Up, x, k         - Rotate clockwise
  z                - Rotate counter-clockwise
  Down, j          - Soft drop
  Space            - Hard drop
  c                - Hold
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Examples:
  tetris play
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml
  tetris play --db :memory:`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard, "tetris")
	if err != nil {
		return err
	}
	defer closeLog()

	tetris.SetConfigPath(flagConfig)
	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(tetris.GameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	board, err := openLeaderboard(cmd.Context(), flagRedis, flagDBPath)
	if err != nil {
		// The game still works without a leaderboard.
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard: %v\n", err)
		logger.Warn("leaderboard unavailable", "error", err)
		board = nil
	}
	if board != nil {
		defer board.Close()
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Leaderboard: board,
		Config:      gameCfg,
		Logger:      logger,
		Player:      os.Getenv("USER"),
	}

	if err := tui.Run(game, opts); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}

