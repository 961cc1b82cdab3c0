package quickdoor

import (
	"strconv"
	"strings"
)

// Store is the key-value capability used to persist the best score.
type Store interface {
	// Get returns the stored value and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Random is the source of door positions and timing jitter.
// *math/rand.Rand satisfies it.
type Random interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// parseBest decodes a stored best score. Anything that is not a
// non-negative base-10 integer reads as zero.
func parseBest(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// loadBest reads the best score. Failures are logged and read as zero.
// Caller holds e.mu or the engine is not yet shared.
func (e *Engine) loadBest() int {
	if e.store == nil {
		return 0
	}
	raw, ok, err := e.store.Get(e.bestKey)
	if err != nil {
		e.logger.Warn("could not load best score", "key", e.bestKey, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	return parseBest(raw)
}

// saveBest writes the best score. Failures are logged and swallowed. Caller holds e.mu.
func (e *Engine) saveBest() {
	if e.store == nil {
		return
	}
	if err := e.store.Set(e.bestKey, strconv.Itoa(e.state.Best)); err != nil {
		e.logger.Warn("could not save best score", "key", e.bestKey, "error", err)
	}
}

// removeBest clears the persisted best score. Caller holds e.mu.
func (e *Engine) removeBest() {
	if e.store == nil {
		return
	}
	if err := e.store.Remove(e.bestKey); err != nil {
		e.logger.Warn("could not clear best score", "key", e.bestKey, "error", err)
	}
}
