package schedule

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/models"
)

// Memo caches the last reconciled view. It re-derives the view from the same
// two inputs whenever their fingerprint changes, so a hit is always equal to
// a fresh Reconcile call.
type Memo struct {
	mu    sync.Mutex
	key   uint64
	valid bool
	view  View
	hits  int
}

type memoInput struct {
	Window    int
	Persisted []models.DaySlot
	Options   Options
}

func (m *Memo) Reconcile(window int, persisted []models.DaySlot, opts Options) View {
	key, err := hashstructure.Hash(memoInput{window, persisted, opts}, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Debug("Could not fingerprint schedule inputs", "error", err)
		return Reconcile(window, persisted, opts)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.key == key {
		m.hits++
		return m.view.clone()
	}
	m.view = Reconcile(window, persisted, opts)
	m.key = key
	m.valid = true
	return m.view.clone()
}

// Invalidate forces the next call to recompute.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}

// Hits reports how many calls were served from the cache.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

func (v View) clone() View {
	slots := make([]models.DaySlot, len(v.Slots))
	copy(slots, v.Slots)
	return View{Slots: slots, Window: v.Window}
}
