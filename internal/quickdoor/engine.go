package quickdoor

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quickdoor/internal/config"
)

// Options configures a new Engine. Zero fields get defaults: the embedded
// config, no persistence, a time-seeded PRNG, the system clock and a
// discarding logger.
type Options struct {
	Config config.Config
	Store  Store
	Rand   Random
	Clock  Clock
	Logger *log.Logger
}

// Engine owns the game state and the single active round timer.
// All methods are safe for concurrent use; timer callbacks and player input
// are serialized on the engine's lock.
type Engine struct {
	mu      sync.Mutex
	timing  config.TimingConfig
	initial float64 // Difficulty at Start
	curve   Curve
	bestKey string

	clock  Clock
	rng    Random
	store  Store
	logger *log.Logger

	state State

	// Round timer. gen advances on every cancel, and a callback that
	// captured an older gen does nothing when it fires.
	round Timer
	gen   uint64

	// Feedback display timer, guarded the same way.
	flash    Timer
	flashGen uint64

	changes chan struct{}
	closed  bool
}

// New creates an engine in the stopped state with best loaded from the store.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	e := &Engine{
		timing:  cfg.Timing,
		initial: cfg.Difficulty.InitialLevel,
		curve:   NewCurve(cfg),
		bestKey: cfg.Storage.BestKey,
		clock:   opts.Clock,
		rng:     opts.Rand,
		store:   opts.Store,
		logger:  opts.Logger,
		changes: make(chan struct{}, 1),
	}
	e.state = State{
		SpeedMs:    cfg.Timing.InitialSpeedMs,
		Difficulty: cfg.Difficulty.InitialLevel,
	}
	e.state.Best = e.loadBest()
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Changes returns a channel that receives a signal after state changes.
// Signals coalesce: a reader that falls behind sees one pending signal.
// The channel is closed by Close.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// InitialSpeedMs returns the speed a session starts at.
func (e *Engine) InitialSpeedMs() int {
	return e.timing.InitialSpeedMs
}

// Start begins a session. It returns false if one is already running.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state.Running {
		return false
	}

	e.state.Score = 0
	e.state.SpeedMs = e.timing.InitialSpeedMs
	e.state.Difficulty = e.initial
	e.state.DoorOpen = false
	e.state.Running = true
	e.logger.Debug("session started", "speed_ms", e.state.SpeedMs)

	e.scheduleRound()
	e.notify()
	return true
}

// Stop ends the session, folds the score into best and persists it.
// It returns false if no session is running.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.state.Running {
		return false
	}

	e.state.Running = false
	e.state.DoorOpen = false
	e.cancelAll()
	e.clearFlash()

	if e.state.Score > e.state.Best {
		e.state.Best = e.state.Score
	}
	e.saveBest()
	e.logger.Debug("session stopped", "score", e.state.Score, "best", e.state.Best)

	e.notify()
	return true
}

// ResetBest zeroes the best score and clears it from the store.
// It works whether or not a session is running.
func (e *Engine) ResetBest() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.state.Best = 0
	e.removeBest()
	e.notify()
}

// Close cancels every pending timer and closes the Changes channel.
// It does not persist anything; call Stop first to keep the session's score.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.state.Running = false
	e.state.DoorOpen = false
	e.cancelAll()
	e.clearFlash()
	e.closed = true
	close(e.changes)
}

// notify signals observers without blocking. Caller holds e.mu.
func (e *Engine) notify() {
	if e.closed {
		return
	}
	select {
	case e.changes <- struct{}{}:
	default:
	}
}
