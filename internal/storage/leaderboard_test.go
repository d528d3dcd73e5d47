package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"", DefaultName},
		{"   ", DefaultName},
		{"  ace  ", "ace"},
		{"ABCDEFGHIJKLMNOP", "ABCDEFGHIJKLMNOP"},
		{"ABCDEFGHIJKLMNOPQRS", "ABCDEFGHIJKLMNOP"},
		{"ÄÖÜäöüÄÖÜäöüÄÖÜäöü", "ÄÖÜäöüÄÖÜäöüÄÖÜä"},
		{"short name      x", "short name"},
	}

	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.expected {
			t.Errorf("NormalizeName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

// runLeaderboardSuite exercises the Leaderboard contract against lb.
// Each subtest uses its own game id so backends need no reset between them.
func runLeaderboardSuite(t *testing.T, lb Leaderboard) {
	ctx := context.Background()

	t.Run("empty board", func(t *testing.T) {
		game := "suite-empty"
		entries, err := lb.Top(ctx, game, 0)
		if err != nil {
			t.Fatalf("Top() failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Top() = %d entries, expected 0", len(entries))
		}
		high, err := lb.HighScore(ctx, game)
		if err != nil || high != 0 {
			t.Errorf("HighScore() = %d, %v, expected 0, nil", high, err)
		}
		ok, err := lb.Qualifies(ctx, game, 0)
		if err != nil || !ok {
			t.Errorf("Qualifies(0) = %v, %v on an empty board, expected true", ok, err)
		}
	})

	t.Run("ordering and truncation", func(t *testing.T) {
		game := "suite-trunc"
		for i := 1; i <= 12; i++ {
			if err := lb.Submit(ctx, game, fmt.Sprintf("p%d", i), i*100); err != nil {
				t.Fatalf("Submit() failed: %v", err)
			}
		}

		entries, err := lb.Top(ctx, game, 0)
		if err != nil {
			t.Fatalf("Top() failed: %v", err)
		}
		if len(entries) != MaxEntries {
			t.Fatalf("Top() = %d entries, expected %d", len(entries), MaxEntries)
		}
		for i, e := range entries {
			if expected := (12 - i) * 100; e.Score != expected {
				t.Errorf("entry %d score = %d, expected %d", i, e.Score, expected)
			}
			if e.ID == "" {
				t.Errorf("entry %d has no run id", i)
			}
		}
		if entries[0].Name != "p12" {
			t.Errorf("best entry name = %q, expected p12", entries[0].Name)
		}

		high, err := lb.HighScore(ctx, game)
		if err != nil || high != 1200 {
			t.Errorf("HighScore() = %d, %v, expected 1200", high, err)
		}

		limited, err := lb.Top(ctx, game, 3)
		if err != nil || len(limited) != 3 {
			t.Errorf("Top(3) = %d entries, %v, expected 3", len(limited), err)
		}
	})

	t.Run("qualifies", func(t *testing.T) {
		game := "suite-qualify"
		for i := 1; i <= MaxEntries; i++ {
			if err := lb.Submit(ctx, game, "", i*10); err != nil {
				t.Fatalf("Submit() failed: %v", err)
			}
		}

		tests := []struct {
			score    int
			expected bool
		}{
			{5, false},
			{10, false}, // equal to the last entry
			{11, true},
			{1000, true},
		}
		for _, tc := range tests {
			ok, err := lb.Qualifies(ctx, game, tc.score)
			if err != nil {
				t.Fatalf("Qualifies() failed: %v", err)
			}
			if ok != tc.expected {
				t.Errorf("Qualifies(%d) = %v, expected %v", tc.score, ok, tc.expected)
			}
		}
	})

	t.Run("ties keep earlier entry first", func(t *testing.T) {
		game := "suite-ties"
		for _, name := range []string{"first", "second", "third"} {
			if err := lb.Submit(ctx, game, name, 500); err != nil {
				t.Fatalf("Submit() failed: %v", err)
			}
		}
		entries, err := lb.Top(ctx, game, 0)
		if err != nil {
			t.Fatalf("Top() failed: %v", err)
		}
		var names []string
		for _, e := range entries {
			names = append(names, e.Name)
		}
		if strings.Join(names, ",") != "first,second,third" {
			t.Errorf("tie order = %v, expected [first second third]", names)
		}
	})

	t.Run("default and capped names", func(t *testing.T) {
		game := "suite-names"
		if err := lb.Submit(ctx, game, "  ", 10); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		if err := lb.Submit(ctx, game, "a|name|with|pipes-and-more", 20); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		entries, err := lb.Top(ctx, game, 0)
		if err != nil {
			t.Fatalf("Top() failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("Top() = %d entries, expected 2", len(entries))
		}
		if entries[0].Name != "a|name|with|pipe" {
			t.Errorf("capped name = %q, expected %q", entries[0].Name, "a|name|with|pipe")
		}
		if entries[1].Name != DefaultName {
			t.Errorf("blank name = %q, expected %q", entries[1].Name, DefaultName)
		}
	})

	t.Run("games are isolated and clear", func(t *testing.T) {
		if err := lb.Submit(ctx, "suite-a", "x", 1); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		if err := lb.Submit(ctx, "suite-b", "y", 2); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		if err := lb.Clear(ctx, "suite-a"); err != nil {
			t.Fatalf("Clear() failed: %v", err)
		}

		a, _ := lb.Top(ctx, "suite-a", 0)
		b, _ := lb.Top(ctx, "suite-b", 0)
		if len(a) != 0 || len(b) != 1 {
			t.Errorf("after Clear(suite-a): a=%d b=%d entries, expected 0 and 1", len(a), len(b))
		}
	})
}

func TestMemoryLeaderboard(t *testing.T) {
	lb := NewMemory()
	defer lb.Close()
	runLeaderboardSuite(t, lb)
}
