package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
	"github.com/vovakirdan/quickdoor/internal/storage"
)

// fixedRand always picks the same value, so every round arms door v.
type fixedRand struct{ v int }

func (r fixedRand) Intn(n int) int { return r.v % n }

// fakeBook records saved scores in memory.
type fakeBook struct {
	mu      sync.Mutex
	entries []storage.ScoreEntry
}

func (b *fakeBook) SaveScore(player string, score int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, storage.ScoreEntry{
		ID:        int64(len(b.entries) + 1),
		Player:    player,
		Score:     score,
		CreatedAt: time.Now(),
	})
	return int64(len(b.entries)), nil
}

func (b *fakeBook) TopScores(limit int) ([]storage.ScoreEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]storage.ScoreEntry(nil), b.entries...), nil
}

func (b *fakeBook) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// With fixedRand{2} and the default config the door is 3 (index 2),
// it opens after 302ms and stays open for 1198ms.
const (
	testDoor     = 2
	testOpenWait = 302 * time.Millisecond
)

func newTestModel(t *testing.T, book ScoreBook) (Model, *quickdoor.Engine, *quickdoor.ManualClock) {
	t.Helper()
	clock := quickdoor.NewManualClock()
	engine := quickdoor.New(quickdoor.Options{
		Store: storage.NewMemory(),
		Rand:  fixedRand{v: testDoor},
		Clock: clock,
	})
	t.Cleanup(engine.Close)

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Player: "tester"}
	return NewModel(engine, book, nil, cfg), engine, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
