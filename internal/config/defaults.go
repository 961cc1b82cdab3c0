package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/quickdoor.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded Quick Door configuration.
// It mirrors defaults/quickdoor.yaml and is used if the embedded copy fails to parse.
func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			InitialSpeedMs: 1200,
			SpeedFloorMs:   400,
			MinOpenMs:      250,
			OpenJitterMs:   400,
			WaitBaseMs:     300,
			WaitJitterMs:   500,
			CooldownMs:     250,
			SuccessFlashMs: 200,
			MissFlashMs:    300,
		},
		Difficulty: DifficultyConfig{
			InitialLevel:       1,
			MaxLevel:           10,
			SuccessSpeedStepMs: 30,
			MissSpeedStepMs:    20,
			SuccessLevelStep:   0.2,
			MissLevelStep:      0.1,
		},
		Storage: StorageConfig{
			DBPath:  "~/.quickdoor/quickdoor.db",
			BestKey: "quickdoor_best",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
