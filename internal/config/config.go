// Package config provides YAML-based game configuration loading and
// difficulty presets for Quick Door.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all configuration for Quick Door.
type Config struct {
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// TimingConfig defines round timing in milliseconds.
type TimingConfig struct {
	InitialSpeedMs int `yaml:"initial_speed_ms"` // Base open interval at Start
	SpeedFloorMs   int `yaml:"speed_floor_ms"`   // Fastest the game can get
	MinOpenMs      int `yaml:"min_open_ms"`      // Shortest open window
	OpenJitterMs   int `yaml:"open_jitter_ms"`   // Random amount shaved off the open window
	WaitBaseMs     int `yaml:"wait_base_ms"`     // Closed-door dwell before opening
	WaitJitterMs   int `yaml:"wait_jitter_ms"`   // Random extra dwell
	CooldownMs     int `yaml:"cooldown_ms"`      // Rest after a hit
	SuccessFlashMs int `yaml:"success_flash_ms"` // Success feedback display window
	MissFlashMs    int `yaml:"miss_flash_ms"`    // Miss feedback display window
}

// DifficultyConfig defines how speed and level ramp on hits and misses.
type DifficultyConfig struct {
	InitialLevel       float64 `yaml:"initial_level"`
	MaxLevel           float64 `yaml:"max_level"`
	SuccessSpeedStepMs int     `yaml:"success_speed_step_ms"`
	MissSpeedStepMs    int     `yaml:"miss_speed_step_ms"`
	SuccessLevelStep   float64 `yaml:"success_level_step"`
	MissLevelStep      float64 `yaml:"miss_level_step"`
}

// StorageConfig defines where the best score lives.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	BestKey string `yaml:"best_key"`
}

// ServerConfig defines SSH server parameters.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Ms converts a millisecond count from the config into a duration.
func Ms(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Ranges the game curve is designed for.
const (
	MinSpeedMs    = 400  // Fastest allowed open interval
	MaxSpeedMs    = 1200 // Slowest allowed open interval
	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	t := c.Timing
	if t.SpeedFloorMs < MinSpeedMs {
		errs = append(errs, fmt.Errorf("timing.speed_floor_ms must be >= %d, got %d", MinSpeedMs, t.SpeedFloorMs))
	}
	if t.InitialSpeedMs > MaxSpeedMs {
		errs = append(errs, fmt.Errorf("timing.initial_speed_ms must be <= %d, got %d", MaxSpeedMs, t.InitialSpeedMs))
	}
	if t.InitialSpeedMs < t.SpeedFloorMs {
		errs = append(errs, fmt.Errorf("timing.initial_speed_ms (%d) must be >= speed_floor_ms (%d)", t.InitialSpeedMs, t.SpeedFloorMs))
	}
	if t.MinOpenMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.min_open_ms must be positive, got %d", t.MinOpenMs))
	}
	if t.OpenJitterMs < 0 || t.WaitJitterMs < 0 {
		errs = append(errs, errors.New("timing jitter values must not be negative"))
	}
	if t.WaitBaseMs < 0 || t.CooldownMs < 0 || t.SuccessFlashMs < 0 || t.MissFlashMs < 0 {
		errs = append(errs, errors.New("timing delays must not be negative"))
	}

	d := c.Difficulty
	if d.InitialLevel < MinDifficulty {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be >= %g, got %g", MinDifficulty, d.InitialLevel))
	}
	if d.MaxLevel > MaxDifficulty {
		errs = append(errs, fmt.Errorf("difficulty.max_level must be <= %g, got %g", MaxDifficulty, d.MaxLevel))
	}
	if d.MaxLevel < d.InitialLevel {
		errs = append(errs, fmt.Errorf("difficulty.max_level (%g) must be >= initial_level (%g)", d.MaxLevel, d.InitialLevel))
	}
	if d.SuccessSpeedStepMs < 0 || d.MissSpeedStepMs < 0 {
		errs = append(errs, errors.New("difficulty speed steps must not be negative"))
	}
	if d.SuccessLevelStep < 0 || d.MissLevelStep < 0 {
		errs = append(errs, errors.New("difficulty level steps must not be negative"))
	}

	if c.Storage.BestKey == "" {
		errs = append(errs, errors.New("storage.best_key must not be empty"))
	}
	return errors.Join(errs...)
}
