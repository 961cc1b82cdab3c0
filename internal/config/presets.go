package config

import "strings"

// DifficultyPreset selects a starting speed.
type DifficultyPreset string

const (
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// ParseDifficultyPreset converts a string to a preset. Unknown values map to normal.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyHard:
		return DifficultyHard
	case DifficultyExpert:
		return DifficultyExpert
	default:
		return DifficultyNormal
	}
}

// InitialSpeedForPreset returns the starting open interval for a preset.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyHard:
		return 900
	case DifficultyExpert:
		return 600
	default:
		return 1200
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the configured initial speed untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyNormal {
		return
	}
	speed := InitialSpeedForPreset(preset)
	if speed < cfg.Timing.SpeedFloorMs {
		speed = cfg.Timing.SpeedFloorMs
	}
	cfg.Timing.InitialSpeedMs = speed
}
