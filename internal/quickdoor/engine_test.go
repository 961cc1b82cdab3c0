package quickdoor

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/quickdoor/internal/config"
)

func TestNewEngineInitialState(t *testing.T) {
	store := newMemStore()
	store.data["quickdoor_best"] = "7"

	e, clock := newTestEngine(t, store)
	s := e.Snapshot()

	if s.Running || s.Score != 0 || s.DoorOpen {
		t.Errorf("unexpected initial state %+v", s)
	}
	if s.Best != 7 {
		t.Errorf("Best = %d, expected 7 from store", s.Best)
	}
	if s.SpeedMs != 1200 || !almostEqual(s.Difficulty, 1) {
		t.Errorf("speed/difficulty = %d/%f, expected 1200/1", s.SpeedMs, s.Difficulty)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, expected no timers before Start", clock.Pending())
	}
}

func TestStoredBestParsing(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"12", 12},
		{" 12 ", 12},
		{"abc", 0},
		{"-3", 0},
		{"", 0},
		{"4.5", 0},
	}

	for _, tc := range tests {
		store := newMemStore()
		store.data["quickdoor_best"] = tc.raw
		e, _ := newTestEngine(t, store)
		if got := e.Snapshot().Best; got != tc.expected {
			t.Errorf("stored %q: Best = %d, expected %d", tc.raw, got, tc.expected)
		}
	}
}

func TestStartSchedulesRound(t *testing.T) {
	// position 2, wait jitter 100 -> opens after 400ms
	e, clock := newTestEngine(t, nil, 2, 100)

	if !e.Start() {
		t.Fatal("Start() should succeed")
	}
	s := e.Snapshot()
	if !s.Running || s.Phase != PhaseWaiting || s.Position != 2 || s.DoorOpen {
		t.Fatalf("after Start: %+v", s)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, expected exactly the wait timer", clock.Pending())
	}

	clock.Advance(399 * time.Millisecond)
	if e.Snapshot().DoorOpen {
		t.Fatal("door opened before wait elapsed")
	}

	clock.Advance(time.Millisecond)
	s = e.Snapshot()
	if !s.DoorOpen || s.Phase != PhaseOpen {
		t.Errorf("door should be open after 400ms: %+v", s)
	}
	if !s.IsOpen(2) || s.IsOpen(1) {
		t.Error("IsOpen should report only the armed door")
	}
}

func TestOpenWindowLength(t *testing.T) {
	// position 0, wait 0 jitter, open jitter 150 -> open for 1050ms
	e, clock := newTestEngine(t, nil, 0, 0, 150)
	e.Start()

	clock.Advance(300 * time.Millisecond)
	if !e.Snapshot().DoorOpen {
		t.Fatal("door should be open")
	}

	clock.Advance(1049 * time.Millisecond)
	if !e.Snapshot().DoorOpen {
		t.Fatal("door closed before open window elapsed")
	}
	clock.Advance(time.Millisecond)
	if e.Snapshot().Feedback != FeedbackMiss {
		t.Error("open window should have ended in a miss")
	}
}

func TestOpenWindowMinimum(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.InitialSpeedMs = 500
	clock := NewManualClock()
	// open jitter 399 would give 101ms, clamped to 250
	e := New(Options{Config: cfg, Rand: &scriptedRand{values: []int{0, 0, 399}}, Clock: clock})
	defer e.Close()

	e.Start()
	clock.Advance(300 * time.Millisecond)
	clock.Advance(249 * time.Millisecond)
	if !e.Snapshot().DoorOpen {
		t.Fatal("open window shorter than the 250ms minimum")
	}
	clock.Advance(time.Millisecond)
	if e.Snapshot().DoorOpen {
		t.Error("door should close at the 250ms minimum")
	}
}

func TestMissPath(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()

	clock.Advance(300 * time.Millisecond)  // opens
	clock.Advance(1200 * time.Millisecond) // misses

	s := e.Snapshot()
	if s.DoorOpen {
		t.Error("door should be closed after a miss")
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected floor of 0", s.Score)
	}
	if s.Feedback != FeedbackMiss {
		t.Errorf("Feedback = %v, expected miss", s.Feedback)
	}
	if s.SpeedMs != 1180 || !almostEqual(s.Difficulty, 1.1) {
		t.Errorf("speed/difficulty = %d/%f, expected 1180/1.1", s.SpeedMs, s.Difficulty)
	}
	if s.Phase != PhaseWaiting || !s.Running {
		t.Errorf("next round should be scheduled immediately: %+v", s)
	}

	clock.Advance(299 * time.Millisecond)
	if e.Snapshot().Feedback != FeedbackMiss {
		t.Error("miss feedback cleared before 300ms")
	}
	clock.Advance(time.Millisecond)
	if e.Snapshot().Feedback != FeedbackNone {
		t.Error("miss feedback should clear after 300ms")
	}
}

func TestHitThenMissScenario(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()

	clock.Advance(300 * time.Millisecond)
	if out := e.RegisterAttempt(0); out != OutcomeHit {
		t.Fatalf("RegisterAttempt(0) = %v, expected hit", out)
	}

	s := e.Snapshot()
	if s.Score != 1 || s.DoorOpen {
		t.Errorf("after hit: %+v", s)
	}
	if s.SpeedMs != 1170 || !almostEqual(s.Difficulty, 1.2) {
		t.Errorf("after hit speed/difficulty = %d/%f, expected 1170/1.2", s.SpeedMs, s.Difficulty)
	}
	if s.Feedback != FeedbackSuccess {
		t.Errorf("Feedback = %v, expected success", s.Feedback)
	}
	if s.Phase != PhaseCooldown {
		t.Errorf("Phase = %v, expected cooldown", s.Phase)
	}

	clock.Advance(200 * time.Millisecond)
	if e.Snapshot().Feedback != FeedbackNone {
		t.Error("success feedback should clear after 200ms")
	}
	clock.Advance(49 * time.Millisecond)
	if e.Snapshot().Phase != PhaseCooldown {
		t.Error("next round scheduled before cooldown elapsed")
	}
	clock.Advance(time.Millisecond)
	if e.Snapshot().Phase != PhaseWaiting {
		t.Fatal("next round should be scheduled after the 250ms cooldown")
	}

	clock.Advance(300 * time.Millisecond)  // opens
	clock.Advance(1170 * time.Millisecond) // misses

	s = e.Snapshot()
	if s.SpeedMs != 1150 || !almostEqual(s.Difficulty, 1.3) {
		t.Errorf("after miss speed/difficulty = %d/%f, expected 1150/1.3", s.SpeedMs, s.Difficulty)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0 after hit then miss", s.Score)
	}
}

func TestWrongDoorIsNoOp(t *testing.T) {
	e, clock := newTestEngine(t, nil, 1)
	e.Start()
	clock.Advance(300 * time.Millisecond)

	before := e.Snapshot()
	if before.Position != 1 || !before.DoorOpen {
		t.Fatalf("setup: %+v", before)
	}
	pending := clock.Pending()

	for _, pos := range []int{0, 2, 3, -1, 4, 99} {
		if out := e.RegisterAttempt(pos); out != OutcomeIgnored {
			t.Errorf("RegisterAttempt(%d) = %v, expected ignored", pos, out)
		}
	}

	if after := e.Snapshot(); after != before {
		t.Errorf("wrong-door attempt changed state:\n%+v\n%+v", before, after)
	}
	if clock.Pending() != pending {
		t.Errorf("Pending() = %d, expected %d", clock.Pending(), pending)
	}

	// The miss deadline is still armed
	clock.Advance(1200 * time.Millisecond)
	if e.Snapshot().Feedback != FeedbackMiss {
		t.Error("miss timer should still fire after a wrong-door attempt")
	}
}

func TestClosedDoorPenalty(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()
	hit(t, e, clock)
	hit(t, e, clock)

	// Cooldown elapses, new round armed at position 0 and closed
	clock.Advance(250 * time.Millisecond)
	s := e.Snapshot()
	if s.Score != 2 || s.Phase != PhaseWaiting || s.DoorOpen {
		t.Fatalf("setup: %+v", s)
	}

	if out := e.RegisterAttempt(s.Position); out != OutcomeClosedDoor {
		t.Fatalf("RegisterAttempt on closed door = %v, expected closed-door", out)
	}
	after := e.Snapshot()
	if after.Score != 1 {
		t.Errorf("Score = %d, expected 1", after.Score)
	}
	if after.Feedback != FeedbackNone {
		t.Errorf("Feedback = %v, closed-door penalty has no feedback", after.Feedback)
	}
	if after.Phase != PhaseWaiting || after.SpeedMs != s.SpeedMs {
		t.Errorf("closed-door penalty should not touch the round: %+v", after)
	}

	// The in-flight wait timer opens the door on schedule
	clock.Advance(300 * time.Millisecond)
	if !e.Snapshot().DoorOpen {
		t.Error("door should open on the original schedule")
	}
}

func TestClosedDoorPenaltyFloorsAtZero(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.Start()

	for range 3 {
		if out := e.RegisterAttempt(0); out != OutcomeClosedDoor {
			t.Fatalf("RegisterAttempt(0) = %v, expected closed-door", out)
		}
	}
	if s := e.Snapshot(); s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
}

func TestAttemptIgnoredWhenStopped(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	before := e.Snapshot()

	for pos := range DoorCount {
		if out := e.RegisterAttempt(pos); out != OutcomeIgnored {
			t.Errorf("RegisterAttempt(%d) while stopped = %v", pos, out)
		}
	}
	if after := e.Snapshot(); after != before {
		t.Errorf("attempt while stopped changed state:\n%+v\n%+v", before, after)
	}
}

func TestInvalidTransitions(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	if e.Stop() {
		t.Error("Stop() while stopped should return false")
	}
	if !e.Start() {
		t.Fatal("Start() should succeed")
	}
	if e.Start() {
		t.Error("Start() while running should return false")
	}
	if !e.Stop() {
		t.Error("Stop() while running should succeed")
	}
	if e.Stop() {
		t.Error("second Stop() should return false")
	}
}

func TestStopCancelsTimers(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
	}{
		{"mid-wait", 100 * time.Millisecond},
		{"mid-open", 500 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, clock := newTestEngine(t, nil)
			e.Start()
			clock.Advance(tc.advance)

			e.Stop()
			stopped := e.Snapshot()
			if stopped.Running || stopped.DoorOpen || stopped.Phase != PhaseIdle {
				t.Errorf("after Stop: %+v", stopped)
			}
			if clock.Pending() != 0 {
				t.Errorf("Pending() = %d, expected all timers cancelled", clock.Pending())
			}

			clock.Advance(10 * time.Second)
			if after := e.Snapshot(); after != stopped {
				t.Errorf("state changed after Stop:\n%+v\n%+v", stopped, after)
			}
		})
	}
}

func TestStopDuringCooldownAndFeedback(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()
	hit(t, e, clock)

	e.Stop()
	s := e.Snapshot()
	if s.Feedback != FeedbackNone || s.Phase != PhaseIdle {
		t.Errorf("after Stop: %+v", s)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, expected cooldown and feedback timers cancelled", clock.Pending())
	}
	if s.Best != 1 {
		t.Errorf("Best = %d, expected 1", s.Best)
	}
}

// racyClock hands out timers whose Stop always loses the race: the callback
// is considered already queued.
type racyClock struct {
	callbacks []func()
}

type lostTimer struct{}

func (lostTimer) Stop() bool { return false }

func (c *racyClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.callbacks = append(c.callbacks, f)
	return lostTimer{}
}

func TestStaleCallbackAfterStop(t *testing.T) {
	clock := &racyClock{}
	e := New(Options{Config: config.DefaultConfig(), Rand: &scriptedRand{}, Clock: clock})
	defer e.Close()

	e.Start()
	waitFired := clock.callbacks[0]
	e.Stop()
	stopped := e.Snapshot()

	waitFired()

	if after := e.Snapshot(); after != stopped {
		t.Errorf("stale callback mutated state:\n%+v\n%+v", stopped, after)
	}
	if len(clock.callbacks) != 1 {
		t.Errorf("stale callback armed %d new timers", len(clock.callbacks)-1)
	}
}

func TestStaleMissAfterHit(t *testing.T) {
	clock := &racyClock{}
	e := New(Options{Config: config.DefaultConfig(), Rand: &scriptedRand{}, Clock: clock})
	defer e.Close()

	e.Start()
	clock.callbacks[0]() // open
	missFired := clock.callbacks[1]

	if out := e.RegisterAttempt(0); out != OutcomeHit {
		t.Fatalf("RegisterAttempt(0) = %v, expected hit", out)
	}
	afterHit := e.Snapshot()
	armed := len(clock.callbacks)

	missFired()

	if after := e.Snapshot(); after != afterHit {
		t.Errorf("superseded miss callback mutated state:\n%+v\n%+v", afterHit, after)
	}
	if len(clock.callbacks) != armed {
		t.Error("superseded miss callback armed a new round")
	}
}

func TestStopStartResetsSession(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()
	hit(t, e, clock)
	hit(t, e, clock)
	clock.Advance(250 * time.Millisecond)

	if s := e.Snapshot(); s.SpeedMs == 1200 || s.Score == 0 {
		t.Fatalf("setup should have progressed: %+v", s)
	}

	e.Stop()
	e.Start()
	s := e.Snapshot()
	if s.Score != 0 || s.SpeedMs != 1200 || !almostEqual(s.Difficulty, 1) {
		t.Errorf("Start after Stop should reset session: %+v", s)
	}
	if s.Best != 2 {
		t.Errorf("Best = %d, expected 2 carried over", s.Best)
	}
}

func TestBestPersistence(t *testing.T) {
	store := newMemStore()
	store.data["quickdoor_best"] = "1"
	e, clock := newTestEngine(t, store)

	e.Start()
	hit(t, e, clock)
	hit(t, e, clock)
	hit(t, e, clock)
	e.Stop()

	if got := e.Snapshot().Best; got != 3 {
		t.Errorf("Best = %d, expected 3", got)
	}
	if store.data["quickdoor_best"] != "3" {
		t.Errorf("stored best = %q, expected 3", store.data["quickdoor_best"])
	}

	// A worse session keeps the best
	e.Start()
	hit(t, e, clock)
	e.Stop()
	if got := e.Snapshot().Best; got != 3 {
		t.Errorf("Best = %d, expected 3 after worse session", got)
	}
	if store.data["quickdoor_best"] != "3" {
		t.Errorf("stored best = %q, expected 3", store.data["quickdoor_best"])
	}
}

func TestResetBestThenAccumulate(t *testing.T) {
	store := newMemStore()
	store.data["quickdoor_best"] = "9"
	e, clock := newTestEngine(t, store)

	e.ResetBest()
	if got := e.Snapshot().Best; got != 0 {
		t.Errorf("Best = %d after reset, expected 0", got)
	}
	if _, ok := store.data["quickdoor_best"]; ok {
		t.Error("ResetBest should remove the stored value")
	}

	e.Start()
	for range 5 {
		hit(t, e, clock)
	}
	// Reset while running is allowed and does not touch the session
	e.ResetBest()
	if s := e.Snapshot(); !s.Running || s.Score != 5 {
		t.Errorf("ResetBest while running changed session: %+v", s)
	}
	e.Stop()

	if got := e.Snapshot().Best; got != 5 {
		t.Errorf("Best = %d, expected 5", got)
	}
	if store.data["quickdoor_best"] != "5" {
		t.Errorf("stored best = %q, expected 5", store.data["quickdoor_best"])
	}
}

func TestStoreFailureDoesNotBlockGameplay(t *testing.T) {
	e, clock := newTestEngine(t, failingStore{})
	if got := e.Snapshot().Best; got != 0 {
		t.Errorf("Best = %d, expected 0 when load fails", got)
	}

	e.Start()
	hit(t, e, clock)
	hit(t, e, clock)
	if !e.Stop() {
		t.Fatal("Stop() should succeed despite store failure")
	}
	if got := e.Snapshot().Best; got != 2 {
		t.Errorf("Best = %d, expected 2 in memory", got)
	}

	e.ResetBest()
	if got := e.Snapshot().Best; got != 0 {
		t.Errorf("Best = %d, expected 0 after reset", got)
	}
}

func TestFloorAndCap(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	e.Start()

	for range 60 {
		hit(t, e, clock)
	}
	s := e.Snapshot()
	if s.SpeedMs != 400 {
		t.Errorf("SpeedMs = %d, expected floor 400", s.SpeedMs)
	}
	if !almostEqual(s.Difficulty, 10) {
		t.Errorf("Difficulty = %f, expected cap 10", s.Difficulty)
	}
	if s.Level() != 10 {
		t.Errorf("Level() = %d, expected 10", s.Level())
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	clock := NewManualClock()
	e := New(Options{
		Config: config.DefaultConfig(),
		Rand:   rand.New(rand.NewSource(7)),
		Clock:  clock,
	})
	defer e.Close()

	player := rand.New(rand.NewSource(42))
	e.Start()
	prev := e.Snapshot()

	for i := range 5000 {
		switch r := player.Intn(100); {
		case r < 60:
			clock.Advance(time.Duration(player.Intn(200)) * time.Millisecond)
		case r < 95:
			e.RegisterAttempt(player.Intn(DoorCount + 1))
		case r < 98:
			e.Stop()
		default:
			e.Start()
		}

		s := e.Snapshot()
		if s.Score < 0 {
			t.Fatalf("step %d: negative score %d", i, s.Score)
		}
		if s.SpeedMs < 400 || s.SpeedMs > 1200 {
			t.Fatalf("step %d: speed %d out of range", i, s.SpeedMs)
		}
		if s.Difficulty < 1 || s.Difficulty > 10+1e-9 {
			t.Fatalf("step %d: difficulty %f out of range", i, s.Difficulty)
		}
		if s.Best < prev.Best {
			t.Fatalf("step %d: best decreased from %d to %d", i, prev.Best, s.Best)
		}

		if s.Running {
			if s.Phase == PhaseIdle {
				t.Fatalf("step %d: running without a round timer", i)
			}
			// One round timer, plus at most the feedback timer
			if p := clock.Pending(); p < 1 || p > 2 {
				t.Fatalf("step %d: %d timers pending while running", i, p)
			}
			if prev.Running {
				if s.SpeedMs > prev.SpeedMs {
					t.Fatalf("step %d: speed rose from %d to %d", i, prev.SpeedMs, s.SpeedMs)
				}
				if s.Difficulty < prev.Difficulty {
					t.Fatalf("step %d: difficulty fell from %f to %f", i, prev.Difficulty, s.Difficulty)
				}
			}
		} else {
			if s.Phase != PhaseIdle || s.DoorOpen {
				t.Fatalf("step %d: stopped engine has live round %+v", i, s)
			}
			if p := clock.Pending(); p != 0 {
				t.Fatalf("step %d: %d timers pending while stopped", i, p)
			}
		}
		prev = s
	}
}

func TestChangesAndClose(t *testing.T) {
	e, clock := newTestEngine(t, nil)

	e.Start()
	select {
	case <-e.Changes():
	default:
		t.Fatal("Start should signal a change")
	}

	clock.Advance(300 * time.Millisecond)
	select {
	case <-e.Changes():
	default:
		t.Fatal("door opening should signal a change")
	}

	e.Close()
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after Close", clock.Pending())
	}
	if _, ok := <-e.Changes(); ok {
		t.Error("Changes should be closed after Close")
	}
	if e.Start() {
		t.Error("Start after Close should fail")
	}
	if out := e.RegisterAttempt(0); out != OutcomeIgnored {
		t.Errorf("RegisterAttempt after Close = %v", out)
	}
	e.Close() // idempotent
}

func TestSystemClock(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.WaitBaseMs = 5
	cfg.Timing.WaitJitterMs = 0
	cfg.Timing.OpenJitterMs = 0

	e := New(Options{Config: cfg, Rand: &scriptedRand{values: []int{3}}})
	defer e.Close()
	e.Start()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case <-e.Changes():
			s := e.Snapshot()
			if !s.DoorOpen {
				continue
			}
			if out := e.RegisterAttempt(3); out != OutcomeHit {
				t.Fatalf("RegisterAttempt(3) = %v, expected hit", out)
			}
			if got := e.Snapshot().Score; got != 1 {
				t.Errorf("Score = %d, expected 1", got)
			}
			return
		case <-timeout:
			t.Fatal("timed out waiting for the door to open")
		}
	}
}
