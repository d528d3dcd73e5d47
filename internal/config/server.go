package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig holds settings for the SSH server. Values come from an
// optional YAML file, then TETRIS_* environment variables, then defaults.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"TETRIS_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host_key" env:"TETRIS_HOST_KEY"`
	DBPath      string        `yaml:"db" env:"TETRIS_DB" env-default:"~/.tetris/scores.db"`
	RedisAddr   string        `yaml:"redis" env:"TETRIS_REDIS_ADDR"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"TETRIS_IDLE_TIMEOUT" env-default:"30m"`
	TickRate    int           `yaml:"tick_rate" env:"TETRIS_TICK_RATE" env-default:"60"`
}

// LoadServer reads the server configuration. An empty path reads the
// environment only.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: unable to load server config: %w", err)
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return cfg, nil
}
