package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 tetris scores.

Examples:
  tetris scores
  tetris scores --redis localhost:6379
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	board, err := openLeaderboard(cmd.Context(), flagRedis, flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open leaderboard: %w", err)
	}
	defer board.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := board.Clear(ctx, tetris.GameID); err != nil {
			return fmt.Errorf("cannot clear scores: %w", err)
		}
		fmt.Fprintln(out, "Leaderboard cleared.")
		return nil
	}

	scores, err := board.Top(ctx, tetris.GameID, storage.MaxEntries)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Tetris")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tetris play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-10d  %s\n",
			i+1, entry.Name, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if best, err := board.HighScore(ctx, tetris.GameID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	return nil
}
