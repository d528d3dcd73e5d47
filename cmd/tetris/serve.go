package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  time.Duration
	flagServerConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tetris SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All players share one leaderboard,
stored in SQLite (--db) or Redis (--redis).

Settings are read from --server-config, then TETRIS_* environment
variables, then flags given on the command line.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --redis localhost:6379    # Share scores through Redis
  TETRIS_SSH_ADDR=:2222 tetris serve     # Configure from the environment

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", "", "Path to server config YAML")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("db") || cfg.DBPath == "" {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = flagRedis
	}
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}

	logger, closeLog, err := newLogger(os.Stderr, "tetris-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	tetris.SetConfigPath(flagConfig)
	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}

	board, err := openLeaderboard(cmd.Context(), cfg.RedisAddr, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open leaderboard: %w", err)
	}
	defer board.Close()

	server, err := tui.NewSSHServer(cfg, tui.SSHServerOptions{
		GameID:      tetris.GameID,
		Leaderboard: board,
		GameConfig:  gameCfg,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting tetris SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
