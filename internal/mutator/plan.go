package mutator

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/models"
)

// Edit is a partial update. Nil fields keep the current value; each entry in
// Questions replaces the question of its difficulty.
type Edit struct {
	DayNumber *int
	Date      *string
	Questions []models.QuestionSlot
}

// Plan is the outcome of an edit before any store call: the record to save
// under ToSave.ID, and the key to remove afterwards when the record moved.
type Plan struct {
	ToSave    models.DaySlot
	DeleteKey string
}

// Moved reports whether the plan re-keys a saved record.
func (p Plan) Moved() bool {
	return p.DeleteKey != ""
}

// PlanEdit applies edit to a copy of current and decides how it must be
// stored. It makes no store calls.
func PlanEdit(current models.DaySlot, edit Edit, actor string, now time.Time) (Plan, error) {
	next := current.Clone()
	if edit.DayNumber != nil {
		next.DayNumber = *edit.DayNumber
	}
	if edit.Date != nil {
		next.Date = strings.TrimSpace(*edit.Date)
	}
	for _, q := range edit.Questions {
		next = next.WithQuestion(q.Normalize())
	}

	if err := next.Validate(); err != nil {
		return Plan{}, fmt.Errorf("%w: %s: %w", apperrors.ErrValidation, current.Label(), err)
	}
	return plan(current, next, actor, now), nil
}

// plan stamps next and works out whether current's key has to go.
func plan(current, next models.DaySlot, actor string, now time.Time) Plan {
	ts := now.UTC().Format(time.RFC3339)
	next.UpdatedAt = ts
	next.UpdatedBy = actor
	if !current.IsPersisted() || current.CreatedAt == "" {
		next.CreatedAt = ts
		next.CreatedBy = actor
	}
	next.ID = next.Key()
	next.Provenance = models.ProvenancePersisted
	next.Extended = false

	p := Plan{ToSave: next}
	if next.Date != current.Date && current.ID != next.Date && current.IsPersisted() && current.ID != "" {
		p.DeleteKey = current.ID
	}
	return p
}
