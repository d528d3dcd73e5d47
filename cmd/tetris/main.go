// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play in the current terminal (default)
//	tetris serve             - Start SSH server for remote play
//	tetris scores            - Show the leaderboard
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible piece order
//	--db <path>        - Set database path (default: ~/.tetris/scores.db)
//	--redis <addr>     - Use a Redis leaderboard instead of SQLite
//	--log-file <path>  - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagRedis   string
	flagLogFile string
	flagConfig  string
)

// memoryDB selects the in-process leaderboard.
const memoryDB = ":memory:"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris for the terminal, playable locally or over SSH.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View the leaderboard

Examples:
  tetris
  tetris play --seed 42
  tetris serve --ssh :2222
  tetris scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database (\":memory:\" keeps scores in memory)")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "Redis address for a shared leaderboard (overrides --db)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger returns a logger writing to --log-file, or to w when no file is
// set. The returned close function is always safe to call.
func newLogger(w io.Writer, prefix string) (*log.Logger, func(), error) {
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	tetris.SetLogger(logger)
	return logger, closeFn, nil
}

// openLeaderboard opens the backend selected by --redis and --db.
func openLeaderboard(ctx context.Context, redisAddr, dbPath string) (storage.Leaderboard, error) {
	if redisAddr != "" {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rs, err := storage.OpenRedis(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		return rs, nil
	}
	if dbPath == memoryDB {
		return storage.NewMemory(), nil
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
