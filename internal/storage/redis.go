package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Leaderboard kept in one sorted set per game.
//
// Members are "<order>|<unix>|<run id>|<name>". order is a zero-padded
// inverted submission counter, so among equal scores the reverse
// lexicographic order Redis uses puts earlier entries first.
type RedisStore struct {
	client *redis.Client
}

var _ Leaderboard = (*RedisStore)(nil)

// OpenRedis connects to the Redis server at addr.
func OpenRedis(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func leaderboardKey(gameID string) string {
	return "leaderboard:" + gameID
}

func sequenceKey(gameID string) string {
	return "leaderboard:" + gameID + ":seq"
}

// Close closes the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Submit records a score and trims the set to the top MaxEntries.
func (s *RedisStore) Submit(ctx context.Context, gameID, name string, score int) error {
	seq, err := s.client.Incr(ctx, sequenceKey(gameID)).Result()
	if err != nil {
		return fmt.Errorf("storage: cannot allocate sequence: %w", err)
	}

	member := encodeMember(seq, time.Now(), uuid.NewString(), NormalizeName(name))
	key := leaderboardKey(gameID)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: member})
		// Ranks are ascending; keep the highest MaxEntries.
		pipe.ZRemRangeByRank(ctx, key, 0, -(MaxEntries + 1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// Top retrieves the best entries for the given game, highest first.
func (s *RedisStore) Top(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	zs, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(gameID), 0, int64(clampLimit(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}

	entries := make([]ScoreEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		e, err := decodeMember(member)
		if err != nil {
			return nil, err
		}
		e.GameID = gameID
		e.Score = int(z.Score)
		entries = append(entries, e)
	}
	return entries, nil
}

// Qualifies reports whether score would make the board.
func (s *RedisStore) Qualifies(ctx context.Context, gameID string, score int) (bool, error) {
	key := leaderboardKey(gameID)

	count, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	if count < MaxEntries {
		return true, nil
	}

	last, err := s.client.ZRevRangeWithScores(ctx, key, MaxEntries-1, MaxEntries-1).Result()
	if err != nil {
		return false, fmt.Errorf("storage: cannot query last entry: %w", err)
	}
	if len(last) == 0 {
		return true, nil
	}
	return qualifies(int(count), int(last[0].Score), score), nil
}

// HighScore returns the highest score for the given game, or 0.
func (s *RedisStore) HighScore(ctx context.Context, gameID string) (int, error) {
	top, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(gameID), 0, 0).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if len(top) == 0 {
		return 0, nil
	}
	return int(top[0].Score), nil
}

// Clear deletes all scores for the given game.
func (s *RedisStore) Clear(ctx context.Context, gameID string) error {
	if err := s.client.Del(ctx, leaderboardKey(gameID), sequenceKey(gameID)).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

func encodeMember(seq int64, at time.Time, runID, name string) string {
	return fmt.Sprintf("%019d|%d|%s|%s", math.MaxInt64-seq, at.Unix(), runID, name)
}

func decodeMember(member string) (ScoreEntry, error) {
	parts := strings.SplitN(member, "|", 4)
	if len(parts) != 4 {
		return ScoreEntry{}, fmt.Errorf("storage: malformed leaderboard member %q", member)
	}
	unix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: malformed timestamp in %q: %w", member, err)
	}
	return ScoreEntry{
		ID:        parts[2],
		Name:      parts[3],
		CreatedAt: time.Unix(unix, 0),
	}, nil
}
