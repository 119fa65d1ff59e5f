package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/julianstephens/daycard/internal/models"
)

// MemoryStore keeps slots in a map. It backs dry-run imports and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	slots    map[string]models.DaySlot
	settings models.Settings
	loaded   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:    make(map[string]models.DaySlot),
		settings: models.DefaultSettings(),
	}
}

// Seed copies slots and settings from another provider, so a dry run starts
// from the real data without being able to write back to it.
func (s *MemoryStore) Seed(ctx context.Context, from Provider) error {
	slots, err := from.GetAll(ctx)
	if err != nil {
		return err
	}
	settings, err := from.GetSettings()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range slots {
		s.slots[slot.ID] = slot.Clone()
	}
	s.settings = settings
	s.loaded = true
	return nil
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load() error  { return s.Init() }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return "memory" }

func (s *MemoryStore) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *MemoryStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]models.DaySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DaySlot, 0, len(s.slots))
	for key, slot := range s.slots {
		slot = slot.Clone()
		slot.ID = key
		slot.Provenance = models.ProvenancePersisted
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, key string, slot models.DaySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot = slot.Clone()
	slot.ID = key
	s.slots[key] = slot
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Len returns the number of stored slots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
