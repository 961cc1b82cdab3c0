package quickdoor

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/quickdoor/internal/config"
)

// scriptedRand returns queued values (mod n), then zeros.
type scriptedRand struct {
	values []int
	next   int
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.values) {
		return 0
	}
	v := r.values[r.next] % n
	r.next++
	return v
}

// memStore is an in-memory Store for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

var errStoreDown = errors.New("store unavailable")

// failingStore rejects every operation.
type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errStoreDown }
func (failingStore) Set(string, string) error         { return errStoreDown }
func (failingStore) Remove(string) error              { return errStoreDown }

// newTestEngine builds an engine on a manual clock with default config.
func newTestEngine(t *testing.T, store Store, values ...int) (*Engine, *ManualClock) {
	t.Helper()
	clock := NewManualClock()
	e := New(Options{
		Config: config.DefaultConfig(),
		Store:  store,
		Rand:   &scriptedRand{values: values},
		Clock:  clock,
	})
	t.Cleanup(e.Close)
	return e, clock
}

// advanceUntilOpen steps the clock until the armed door opens.
func advanceUntilOpen(t *testing.T, e *Engine, clock *ManualClock) State {
	t.Helper()
	for range 2000 {
		if s := e.Snapshot(); s.DoorOpen {
			return s
		}
		clock.Advance(5 * time.Millisecond)
	}
	t.Fatalf("door never opened (state %+v)", e.Snapshot())
	return State{}
}

// hit opens the current door and hits it.
func hit(t *testing.T, e *Engine, clock *ManualClock) {
	t.Helper()
	s := advanceUntilOpen(t, e, clock)
	if out := e.RegisterAttempt(s.Position); out != OutcomeHit {
		t.Fatalf("RegisterAttempt(%d) = %v, expected hit", s.Position, out)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
