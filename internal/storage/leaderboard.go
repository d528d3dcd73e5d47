// Package storage persists the tetris leaderboard. The SQLite backend uses
// the pure-Go modernc.org/sqlite driver to avoid CGO dependencies; the Redis
// backend lets several SSH servers share one board.
package storage

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// Leaderboard limits.
const (
	MaxEntries  = 10       // Records kept per game
	MaxNameLen  = 16       // Characters kept from a submitted name
	DefaultName = "PLAYER" // Substituted for empty names
)

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID        string // Run UUID
	GameID    string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Leaderboard keeps the top MaxEntries scores per game, highest first.
// Ties keep the earlier entry ahead of the later one.
type Leaderboard interface {
	// Top returns up to limit entries, best first. limit <= 0 means MaxEntries.
	Top(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)

	// Qualifies reports whether score would enter the board: fewer than
	// MaxEntries records, or strictly above the last one.
	Qualifies(ctx context.Context, gameID string, score int) (bool, error)

	// Submit inserts a record and truncates the board to MaxEntries.
	Submit(ctx context.Context, gameID, name string, score int) error

	// HighScore returns the best score, or 0 for an empty board.
	HighScore(ctx context.Context, gameID string) (int, error)

	// Clear deletes every record for gameID.
	Clear(ctx context.Context, gameID string) error

	Close() error
}

// NormalizeName trims name and caps it at MaxNameLen characters. Empty
// names become DefaultName.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	return name
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxEntries {
		return MaxEntries
	}
	return limit
}

// qualifies applies the entry rule to the current board size and the
// score of the last kept record.
func qualifies(count, lastScore, score int) bool {
	return count < MaxEntries || score > lastScore
}
