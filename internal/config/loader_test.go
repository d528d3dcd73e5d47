package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestLoadTetrisEmbeddedDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("LoadTetris() = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
display:
  ghost: false
leaderboard:
  default_name: ACE
`)

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Display.Ghost {
		t.Error("Display.Ghost = true, expected false from file")
	}
	if cfg.Leaderboard.DefaultName != "ACE" {
		t.Errorf("DefaultName = %q, expected %q", cfg.Leaderboard.DefaultName, "ACE")
	}
	// Keys absent from the file keep their defaults
	if !cfg.Display.ShowNext || cfg.Display.CellWidth != 2 || cfg.Leaderboard.ShowTop != 5 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTetris() with a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "display: [unclosed")
	if _, err := LoadTetris(bad); err == nil {
		t.Error("LoadTetris() with malformed YAML should fail")
	}
}

func TestLoadTetrisUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), `
display:
  cell_width: 1
  show_hold: false
`)

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Display.CellWidth != 1 || cfg.Display.ShowHold {
		t.Errorf("user config not applied: %+v", cfg.Display)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		cellWidth int
		showTop   int
		wantCell  int
		wantTop   int
	}{
		{"valid", 1, 3, 1, 3},
		{"zero width", 0, 3, 2, 3},
		{"wide", 5, 3, 2, 3},
		{"negative top", 2, -1, 2, 0},
		{"too many", 2, 50, 2, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			cfg.Display.CellWidth = tc.cellWidth
			cfg.Leaderboard.ShowTop = tc.showTop
			cfg.Normalize()
			if cfg.Display.CellWidth != tc.wantCell || cfg.Leaderboard.ShowTop != tc.wantTop {
				t.Errorf("Normalize() = width %d top %d, expected %d %d",
					cfg.Display.CellWidth, cfg.Leaderboard.ShowTop, tc.wantCell, tc.wantTop)
			}
		})
	}
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer("")
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.DBPath != "~/.tetris/scores.db" {
		t.Errorf("DBPath = %q, expected ~/.tetris/scores.db", cfg.DBPath)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.IdleTimeout)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.TickRate)
	}
}

func TestLoadServerEnvOverrides(t *testing.T) {
	t.Setenv("TETRIS_SSH_ADDR", ":2222")
	t.Setenv("TETRIS_REDIS_ADDR", "localhost:6379")
	t.Setenv("TETRIS_IDLE_TIMEOUT", "5m")

	cfg, err := LoadServer("")
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}
	if cfg.Address != ":2222" || cfg.RedisAddr != "localhost:6379" || cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadServerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	writeFile(t, path, "address: \":4000\"\ndb: /tmp/tetris-scores.db\n")

	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}
	if cfg.Address != ":4000" || cfg.DBPath != "/tmp/tetris-scores.db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected the default 30m", cfg.IdleTimeout)
	}
}

func TestLoadServerMissingFile(t *testing.T) {
	if _, err := LoadServer(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadServer() with a missing file should fail")
	}
}
