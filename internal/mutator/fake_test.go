package mutator

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/daycard/internal/models"
)

type call struct {
	op  string
	key string
}

// fakeGateway records every call and can be told to fail upserts or deletes.
type fakeGateway struct {
	mu       sync.Mutex
	slots    map[string]models.DaySlot
	calls    []call
	failSave error
	failDrop error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{slots: make(map[string]models.DaySlot)}
}

func (g *fakeGateway) GetAll(ctx context.Context) ([]models.DaySlot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.DaySlot
	for k, s := range g.slots {
		s.ID = k
		s.Provenance = models.ProvenancePersisted
		out = append(out, s)
	}
	return out, nil
}

func (g *fakeGateway) Upsert(ctx context.Context, key string, slot models.DaySlot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call{"upsert", key})
	if g.failSave != nil {
		return g.failSave
	}
	g.slots[key] = slot.Clone()
	return nil
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call{"delete", key})
	if g.failDrop != nil {
		return g.failDrop
	}
	delete(g.slots, key)
	return nil
}

var errBackend = errors.New("backend unavailable")
