package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides holds values that may be supplied through the environment.
// Zero values mean "not set".
type EnvOverrides struct {
	DBPath         string        `env:"QUICKDOOR_DB"`
	BestKey        string        `env:"QUICKDOOR_BEST_KEY"`
	SSHAddr        string        `env:"QUICKDOOR_SSH_ADDR"`
	HostKeyPath    string        `env:"QUICKDOOR_HOST_KEY"`
	IdleTimeout    time.Duration `env:"QUICKDOOR_IDLE_TIMEOUT"`
	InitialSpeedMs int           `env:"QUICKDOOR_INITIAL_SPEED_MS"`
}

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg *Config) error {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.DBPath != "" {
		cfg.Storage.DBPath = o.DBPath
	}
	if o.BestKey != "" {
		cfg.Storage.BestKey = o.BestKey
	}
	if o.SSHAddr != "" {
		cfg.Server.Address = o.SSHAddr
	}
	if o.HostKeyPath != "" {
		cfg.Server.HostKeyPath = o.HostKeyPath
	}
	if o.IdleTimeout > 0 {
		cfg.Server.IdleTimeout = o.IdleTimeout
	}
	if o.InitialSpeedMs > 0 {
		cfg.Timing.InitialSpeedMs = o.InitialSpeedMs
	}
	return nil
}
