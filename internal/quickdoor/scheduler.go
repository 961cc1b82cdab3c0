package quickdoor

import (
	"time"

	"github.com/vovakirdan/quickdoor/internal/config"
)

// All functions in this file run with e.mu held.

// scheduleRound arms a new door and the wait timer that opens it.
func (e *Engine) scheduleRound() {
	e.state.Position = e.rng.Intn(DoorCount)
	e.state.DoorOpen = false

	wait := e.timing.WaitBaseMs + e.jitter(e.timing.WaitJitterMs)
	e.logger.Debug("round scheduled", "position", e.state.Position, "wait_ms", wait)
	e.armRound(PhaseWaiting, config.Ms(wait), e.openDoor)
}

// openDoor opens the armed door and arms the miss deadline.
func (e *Engine) openDoor() {
	e.state.DoorOpen = true

	open := max(e.timing.MinOpenMs, e.state.SpeedMs-e.jitter(e.timing.OpenJitterMs))
	e.logger.Debug("door opened", "position", e.state.Position, "open_ms", open)
	e.armRound(PhaseOpen, config.Ms(open), e.missRound)
}

// missRound ends a round whose open window elapsed without a hit.
func (e *Engine) missRound() {
	e.state.DoorOpen = false
	e.state.Score = max(0, e.state.Score-1)
	e.showFeedback(FeedbackMiss, e.timing.MissFlashMs)
	e.state.SpeedMs, e.state.Difficulty = e.curve.Miss(e.state.SpeedMs, e.state.Difficulty)
	e.logger.Debug("round missed", "score", e.state.Score, "speed_ms", e.state.SpeedMs)

	e.scheduleRound()
}

// armRound replaces the pending round timer with fn after d.
func (e *Engine) armRound(phase Phase, d time.Duration, fn func()) {
	e.cancelAll()
	gen := e.gen
	e.state.Phase = phase
	e.round = e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if gen != e.gen || !e.state.Running {
			return // Superseded or stopped
		}
		e.round = nil
		e.state.Phase = PhaseIdle
		fn()
		e.notify()
	})
}

// cancelAll stops the pending round timer and invalidates its callback.
func (e *Engine) cancelAll() {
	if e.round != nil {
		e.round.Stop()
		e.round = nil
	}
	e.gen++
	e.state.Phase = PhaseIdle
}

// showFeedback sets the feedback tag and clears it after ms.
func (e *Engine) showFeedback(f Feedback, ms int) {
	e.clearFlash()
	e.state.Feedback = f

	gen := e.flashGen
	e.flash = e.clock.AfterFunc(config.Ms(ms), func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if gen != e.flashGen {
			return
		}
		e.flash = nil
		e.state.Feedback = FeedbackNone
		e.notify()
	})
}

// clearFlash cancels the feedback timer and resets the tag.
func (e *Engine) clearFlash() {
	if e.flash != nil {
		e.flash.Stop()
		e.flash = nil
	}
	e.flashGen++
	e.state.Feedback = FeedbackNone
}

// jitter returns a uniform value in [0, n), or 0 when n is not positive.
func (e *Engine) jitter(n int) int {
	if n <= 0 {
		return 0
	}
	return e.rng.Intn(n)
}
