package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Leaderboard. It backs `--db :memory:` sessions
// and tests; nothing survives Close.
type Memory struct {
	mu     sync.Mutex
	boards map[string][]ScoreEntry
}

var _ Leaderboard = (*Memory)(nil)

// NewMemory returns an empty in-memory leaderboard.
func NewMemory() *Memory {
	return &Memory{boards: make(map[string][]ScoreEntry)}
}

func (m *Memory) Top(_ context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	board := m.boards[gameID]
	n := min(clampLimit(limit), len(board))
	out := make([]ScoreEntry, n)
	copy(out, board[:n])
	return out, nil
}

func (m *Memory) Qualifies(_ context.Context, gameID string, score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	board := m.boards[gameID]
	if len(board) < MaxEntries {
		return true, nil
	}
	return qualifies(len(board), board[MaxEntries-1].Score, score), nil
}

func (m *Memory) Submit(_ context.Context, gameID, name string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	board := append(m.boards[gameID], ScoreEntry{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Name:      NormalizeName(name),
		Score:     score,
		CreatedAt: time.Now(),
	})
	// Stable sort keeps earlier entries ahead on ties.
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	if len(board) > MaxEntries {
		board = board[:MaxEntries]
	}
	m.boards[gameID] = board
	return nil
}

func (m *Memory) HighScore(_ context.Context, gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if board := m.boards[gameID]; len(board) > 0 {
		return board[0].Score, nil
	}
	return 0, nil
}

func (m *Memory) Clear(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.boards, gameID)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
