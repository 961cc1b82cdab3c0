package quickdoor

import "github.com/vovakirdan/quickdoor/internal/config"

// RegisterAttempt applies a player's hit on door pos.
//
// Attempts are ignored while stopped or on any door other than the armed one.
// Hitting the armed door while it is closed costs a point and leaves the
// round alone. Hitting it while open scores, closes it, and schedules the next
// round after the cooldown.
func (e *Engine) RegisterAttempt(pos int) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.state.Running || pos != e.state.Position {
		return OutcomeIgnored
	}

	if !e.state.DoorOpen {
		e.state.Score = max(0, e.state.Score-1)
		e.logger.Debug("closed door hit", "position", pos, "score", e.state.Score)
		e.notify()
		return OutcomeClosedDoor
	}

	e.state.Score++
	e.state.DoorOpen = false
	e.showFeedback(FeedbackSuccess, e.timing.SuccessFlashMs)
	e.state.SpeedMs, e.state.Difficulty = e.curve.Success(e.state.SpeedMs, e.state.Difficulty)
	e.logger.Debug("door hit", "position", pos, "score", e.state.Score, "speed_ms", e.state.SpeedMs)

	// Replaces the miss deadline
	e.armRound(PhaseCooldown, config.Ms(e.timing.CooldownMs), e.scheduleRound)
	e.notify()
	return OutcomeHit
}
