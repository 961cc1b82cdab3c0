package quickdoor

import (
	"math"

	"github.com/vovakirdan/quickdoor/internal/config"
)

// Curve maps the current speed and difficulty to the next ones after a hit
// or a miss. Speed only ever goes down to Floor; difficulty only goes up to MaxLevel.
type Curve struct {
	Floor            int
	SuccessStep      int
	MissStep         int
	MaxLevel         float64
	SuccessLevelStep float64
	MissLevelStep    float64
}

// NewCurve builds a curve from configuration.
func NewCurve(cfg config.Config) Curve {
	return Curve{
		Floor:            cfg.Timing.SpeedFloorMs,
		SuccessStep:      cfg.Difficulty.SuccessSpeedStepMs,
		MissStep:         cfg.Difficulty.MissSpeedStepMs,
		MaxLevel:         cfg.Difficulty.MaxLevel,
		SuccessLevelStep: cfg.Difficulty.SuccessLevelStep,
		MissLevelStep:    cfg.Difficulty.MissLevelStep,
	}
}

// Success returns the speed and difficulty after a hit.
func (c Curve) Success(speedMs int, level float64) (int, float64) {
	return max(c.Floor, speedMs-c.SuccessStep), math.Min(c.MaxLevel, level+c.SuccessLevelStep)
}

// Miss returns the speed and difficulty after a missed open window.
func (c Curve) Miss(speedMs int, level float64) (int, float64) {
	return max(c.Floor, speedMs-c.MissStep), math.Min(c.MaxLevel, level+c.MissLevelStep)
}

// SpeedRating converts the current interval into the HUD's "Speed" number,
// which grows as the interval shrinks.
func SpeedRating(initialMs, speedMs int) int {
	return initialMs - speedMs + 200
}
