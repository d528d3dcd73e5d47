package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store is the SQLite-backed Leaderboard.
type Store struct {
	db *sql.DB
}

var _ Leaderboard = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// seq orders ties: lower seq was submitted earlier and ranks higher.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(game_id, score DESC, seq ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Submit records a score and drops everything below the top MaxEntries.
func (s *Store) Submit(ctx context.Context, gameID, name string, score int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.ExecContext(ctx,
		"INSERT INTO leaderboard (run_id, game_id, name, score) VALUES (?, ?, ?, ?)",
		uuid.NewString(), gameID, NormalizeName(name), score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM leaderboard
		 WHERE game_id = ? AND seq NOT IN (
			SELECT seq FROM leaderboard
			WHERE game_id = ?
			ORDER BY score DESC, seq ASC
			LIMIT ?
		 )`,
		gameID, gameID, MaxEntries,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot truncate leaderboard: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return nil
}

// Top retrieves the best entries for the given game, highest first.
func (s *Store) Top(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, game_id, name, score, created_at
		 FROM leaderboard
		 WHERE game_id = ?
		 ORDER BY score DESC, seq ASC
		 LIMIT ?`,
		gameID, clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Qualifies reports whether score would make the board.
func (s *Store) Qualifies(ctx context.Context, gameID string, score int) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leaderboard WHERE game_id = ?",
		gameID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	if count < MaxEntries {
		return true, nil
	}

	var last int
	err = s.db.QueryRowContext(ctx,
		`SELECT score FROM leaderboard
		 WHERE game_id = ?
		 ORDER BY score DESC, seq ASC
		 LIMIT 1 OFFSET ?`,
		gameID, MaxEntries-1,
	).Scan(&last)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query last entry: %w", err)
	}

	return qualifies(count, last, score), nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM leaderboard WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Clear deletes all scores for the given game.
func (s *Store) Clear(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM leaderboard WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
