package mutator

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/schedule"
	"github.com/julianstephens/daycard/internal/storage"
)

// Result describes what a mutation did to the store.
type Result struct {
	// Slot is the slot as it should now appear in the view.
	Slot models.DaySlot
	// Moved is set when the record was saved under a new key.
	Moved bool
	// Orphaned holds the old key when the move's delete call failed.
	Orphaned string
	// LocalOnly is set when nothing was sent to the store.
	LocalOnly bool
}

// Mutator turns edits, clears and deletes into gateway calls.
type Mutator struct {
	gateway storage.Gateway
	actor   string
	now     func() time.Time
}

func New(gateway storage.Gateway, actor string) *Mutator {
	return &Mutator{gateway: gateway, actor: actor, now: time.Now}
}

// WithClock replaces the time source used for audit stamps.
func (m *Mutator) WithClock(now func() time.Time) *Mutator {
	m.now = now
	return m
}

func (m *Mutator) Actor() string {
	return m.actor
}

// Apply validates edit against current, rejects it if another saved slot in
// view already holds the target day or date, then saves it.
func (m *Mutator) Apply(ctx context.Context, view schedule.View, current models.DaySlot, edit Edit) (Result, error) {
	p, err := PlanEdit(current, edit, m.actor, m.now())
	if err != nil {
		return Result{}, err
	}
	if i := view.Conflicting(current.ID, p.ToSave.DayNumber, p.ToSave.Date); i >= 0 {
		other := view.Slots[i]
		return Result{}, fmt.Errorf("%w: %s is already %s", apperrors.ErrConflict, current.Label(), other.Label())
	}
	return m.execute(ctx, p)
}

// Persist saves next in place of current without edit validation beyond
// requiring a date to key it by. Used by ingestion.
func (m *Mutator) Persist(ctx context.Context, current, next models.DaySlot) (Result, error) {
	if next.Date == "" {
		return Result{}, fmt.Errorf("%w: %s has no date to save under", apperrors.ErrValidation, next.Label())
	}
	return m.execute(ctx, plan(current, next, m.actor, m.now()))
}

// execute saves first and deletes second. A failed delete leaves the old
// record orphaned but does not fail the mutation.
func (m *Mutator) execute(ctx context.Context, p Plan) (Result, error) {
	if err := m.gateway.Upsert(ctx, p.ToSave.ID, p.ToSave); err != nil {
		return Result{}, fmt.Errorf("%w: save %s: %w", apperrors.ErrPersistence, p.ToSave.Label(), err)
	}
	logger.Info("Saved slot", "key", p.ToSave.ID, "day", p.ToSave.DayNumber)

	res := Result{Slot: p.ToSave, Moved: p.Moved()}
	if !p.Moved() {
		return res, nil
	}
	if err := m.gateway.Delete(ctx, p.DeleteKey); err != nil {
		logger.Warn("Failed to delete stale slot after move", "key", p.DeleteKey, "new_key", p.ToSave.ID, "error", err)
		res.Orphaned = p.DeleteKey
		return res, nil
	}
	logger.Debug("Removed stale slot after move", "key", p.DeleteKey)
	return res, nil
}

// Clear empties the given questions of a saved slot, or all three when none
// are named. Template slots and slots without content cannot be cleared.
func (m *Mutator) Clear(ctx context.Context, slot models.DaySlot, difficulties ...models.Difficulty) (Result, error) {
	if !slot.IsPersisted() {
		return Result{}, fmt.Errorf("%s: %w", slot.Label(), apperrors.ErrNotSaved)
	}
	if slot.Date == "" {
		return Result{}, fmt.Errorf("%s: %w", slot.Label(), apperrors.ErrNothingToClear)
	}
	if len(difficulties) == 0 {
		difficulties = models.Difficulties
	}

	next := slot.Clone()
	cleared := 0
	for _, d := range difficulties {
		if next.Question(d).IsEmpty() {
			continue
		}
		next = next.WithQuestion(models.QuestionSlot{Difficulty: d, Tags: []string{}})
		cleared++
	}
	if cleared == 0 {
		return Result{}, fmt.Errorf("%s: %w", slot.Label(), apperrors.ErrNothingToClear)
	}

	ts := m.now().UTC().Format(time.RFC3339)
	next.UpdatedAt = ts
	next.UpdatedBy = m.actor
	key := slot.ID
	if key == "" {
		key = slot.Date
	}
	next.ID = key
	if err := m.gateway.Upsert(ctx, key, next); err != nil {
		return Result{}, fmt.Errorf("%w: clear %s: %w", apperrors.ErrPersistence, slot.Label(), err)
	}
	logger.Info("Cleared slot questions", "key", key, "count", cleared)
	return Result{Slot: next}, nil
}

// Delete removes a saved slot from the store. Template slots are only
// dropped from the caller's view.
func (m *Mutator) Delete(ctx context.Context, slot models.DaySlot) (Result, error) {
	if !slot.IsPersisted() {
		logger.Debug("Removing template slot locally", "id", slot.ID)
		return Result{Slot: slot, LocalOnly: true}, nil
	}
	if err := m.gateway.Delete(ctx, slot.ID); err != nil {
		return Result{}, fmt.Errorf("%w: delete %s: %w", apperrors.ErrPersistence, slot.Label(), err)
	}
	logger.Info("Deleted slot", "key", slot.ID, "day", slot.DayNumber)
	return Result{Slot: slot}, nil
}

// Deletable reports whether a slot may be offered for deletion: any saved
// slot, or a template past the protected range.
func Deletable(slot models.DaySlot, settings models.Settings) bool {
	return slot.IsPersisted() || slot.DayNumber > settings.DeletableAfter
}
