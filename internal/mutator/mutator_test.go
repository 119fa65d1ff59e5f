package mutator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/schedule"
)

var fixedNow = time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)

func newTestMutator(g *fakeGateway) *Mutator {
	return New(g, "ada").WithClock(func() time.Time { return fixedNow })
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func saved(day int, date string) models.DaySlot {
	return models.DaySlot{
		ID:         date,
		DayNumber:  day,
		Date:       date,
		Easy:       models.QuestionSlot{Title: "Two Sum", Difficulty: models.DifficultyEasy},
		Provenance: models.ProvenancePersisted,
		CreatedAt:  "2024-11-01T08:00:00Z",
		CreatedBy:  "grace",
	}
}

func TestPlanEditValidation(t *testing.T) {
	tmpl := schedule.Generate(5)[2]

	tests := []struct {
		name string
		edit Edit
	}{
		{"no date", Edit{}},
		{"blank date", Edit{Date: strPtr("  ")}},
		{"impossible date", Edit{Date: strPtr("2024-02-30")}},
		{"wrong format", Edit{Date: strPtr("12/01/2024")}},
		{"day zero", Edit{Date: strPtr("2024-12-01"), DayNumber: intPtr(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanEdit(tmpl, tt.edit, "ada", fixedNow)
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("PlanEdit() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestPlanEditTemplateGetsDate(t *testing.T) {
	tmpl := schedule.Generate(5)[2]

	p, err := PlanEdit(tmpl, Edit{Date: strPtr("2024-12-03")}, "ada", fixedNow)
	if err != nil {
		t.Fatalf("PlanEdit() error = %v", err)
	}
	if p.ToSave.ID != "2024-12-03" || p.ToSave.DayNumber != 3 {
		t.Errorf("ToSave = %+v", p.ToSave)
	}
	if p.Moved() {
		t.Errorf("template edit should not delete %q", p.DeleteKey)
	}
	if p.ToSave.CreatedBy != "ada" || p.ToSave.CreatedAt != "2024-12-01T09:30:00Z" {
		t.Errorf("first save should stamp creation, got %q %q", p.ToSave.CreatedBy, p.ToSave.CreatedAt)
	}
	if p.ToSave.Provenance != models.ProvenancePersisted {
		t.Errorf("Provenance = %q", p.ToSave.Provenance)
	}
}

func TestPlanEditQuestionOnly(t *testing.T) {
	current := saved(3, "2024-12-03")
	edit := Edit{Questions: []models.QuestionSlot{{
		Title:      " Merge Intervals ",
		Tags:       []string{"Array", "Array", "Sorting"},
		Difficulty: models.DifficultyMedium,
	}}}

	p, err := PlanEdit(current, edit, "ada", fixedNow)
	if err != nil {
		t.Fatalf("PlanEdit() error = %v", err)
	}
	if p.Moved() {
		t.Error("question edit should not move the slot")
	}
	want := models.QuestionSlot{Title: "Merge Intervals", Tags: []string{"Array", "Sorting"}, Difficulty: models.DifficultyMedium}
	if diff := cmp.Diff(want, p.ToSave.Medium); diff != "" {
		t.Errorf("Medium mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(current.Easy, p.ToSave.Easy); diff != "" {
		t.Errorf("Easy should be untouched (-want +got):\n%s", diff)
	}
	if p.ToSave.CreatedBy != "grace" || p.ToSave.UpdatedBy != "ada" {
		t.Errorf("audit fields = created %q updated %q", p.ToSave.CreatedBy, p.ToSave.UpdatedBy)
	}
	if current.Medium.Title != "" {
		t.Error("PlanEdit modified its input")
	}
}

func TestPlanEditMove(t *testing.T) {
	current := saved(3, "2024-12-03")

	p, err := PlanEdit(current, Edit{Date: strPtr("2024-12-10")}, "ada", fixedNow)
	if err != nil {
		t.Fatalf("PlanEdit() error = %v", err)
	}
	if p.ToSave.ID != "2024-12-10" || p.DeleteKey != "2024-12-03" {
		t.Errorf("plan = save %q delete %q", p.ToSave.ID, p.DeleteKey)
	}
}

func TestApplyTemplateDateAssignment(t *testing.T) {
	g := newFakeGateway()
	m := newTestMutator(g)
	view := schedule.Reconcile(55, nil, schedule.Options{SafetyMargin: 10, BaseDays: 55})
	current := view.Slots[view.ByDay(7)]

	res, err := m.Apply(context.Background(), view, current, Edit{Date: strPtr("2024-12-07")})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []call{{"upsert", "2024-12-07"}}
	if diff := cmp.Diff(want, g.calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if res.Slot.DayNumber != 7 || res.Moved {
		t.Errorf("Result = %+v", res)
	}
}

func TestApplyMoveDeleteFailureIsNotAnError(t *testing.T) {
	g := newFakeGateway()
	g.failDrop = errBackend
	m := newTestMutator(g)
	current := saved(3, "2024-12-03")
	view := schedule.Reconcile(55, []models.DaySlot{current}, schedule.Options{SafetyMargin: 10})

	res, err := m.Apply(context.Background(), view, current, Edit{Date: strPtr("2024-12-04")})
	if err != nil {
		t.Fatalf("Apply() error = %v, delete failure must not fail the edit", err)
	}
	if !res.Moved || res.Orphaned != "2024-12-03" {
		t.Errorf("Result = %+v, want orphaned old key", res)
	}
	if _, ok := g.slots["2024-12-04"]; !ok {
		t.Error("new record was not saved")
	}
	want := []call{{"upsert", "2024-12-04"}, {"delete", "2024-12-03"}}
	if diff := cmp.Diff(want, g.calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMoveDeletesOldKey(t *testing.T) {
	g := newFakeGateway()
	m := newTestMutator(g)
	current := saved(3, "2024-12-03")
	g.slots[current.ID] = current
	view := schedule.Reconcile(55, []models.DaySlot{current}, schedule.Options{SafetyMargin: 10})

	res, err := m.Apply(context.Background(), view, current, Edit{Date: strPtr("2024-12-04")})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if res.Orphaned != "" {
		t.Errorf("Orphaned = %q", res.Orphaned)
	}
	if _, ok := g.slots["2024-12-03"]; ok {
		t.Error("old key still present after move")
	}
}

func TestApplySaveFailure(t *testing.T) {
	g := newFakeGateway()
	g.failSave = errBackend
	m := newTestMutator(g)
	current := saved(3, "2024-12-03")
	view := schedule.Reconcile(55, []models.DaySlot{current}, schedule.Options{SafetyMargin: 10})

	_, err := m.Apply(context.Background(), view, current, Edit{Date: strPtr("2024-12-04")})
	if !errors.Is(err, apperrors.ErrPersistence) || !errors.Is(err, errBackend) {
		t.Fatalf("Apply() error = %v, want ErrPersistence wrapping backend error", err)
	}
	for _, c := range g.calls {
		if c.op == "delete" {
			t.Error("delete issued after failed save")
		}
	}
}

func TestApplyConflicts(t *testing.T) {
	a := saved(3, "2024-12-03")
	b := saved(4, "2024-12-04")
	view := schedule.Reconcile(55, []models.DaySlot{a, b}, schedule.Options{SafetyMargin: 10})

	tests := []struct {
		name string
		edit Edit
	}{
		{"same date", Edit{Date: strPtr("2024-12-04")}},
		{"same day", Edit{DayNumber: intPtr(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGateway()
			_, err := newTestMutator(g).Apply(context.Background(), view, a, tt.edit)
			if !errors.Is(err, apperrors.ErrConflict) {
				t.Errorf("Apply() error = %v, want ErrConflict", err)
			}
			if len(g.calls) != 0 {
				t.Errorf("conflicting edit reached the store: %v", g.calls)
			}
		})
	}
}

func TestPersistRequiresDate(t *testing.T) {
	g := newFakeGateway()
	tmpl := schedule.Generate(3)[0]

	_, err := newTestMutator(g).Persist(context.Background(), tmpl, tmpl)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Persist() error = %v, want ErrValidation", err)
	}
}

func TestPersistKeepsImportFields(t *testing.T) {
	g := newFakeGateway()
	current := saved(3, "2024-12-03")
	next := current.Clone()
	next.Imported = true
	next.ImportBatch = "batch-1"

	res, err := newTestMutator(g).Persist(context.Background(), current, next)
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if !res.Slot.Imported || res.Slot.ImportBatch != "batch-1" {
		t.Errorf("import fields lost: %+v", res.Slot)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	t.Run("template", func(t *testing.T) {
		g := newFakeGateway()
		_, err := newTestMutator(g).Clear(ctx, schedule.Generate(1)[0])
		if !errors.Is(err, apperrors.ErrNotSaved) {
			t.Errorf("Clear() error = %v, want ErrNotSaved", err)
		}
		if len(g.calls) != 0 {
			t.Error("template clear reached the store")
		}
	})

	t.Run("persisted without date", func(t *testing.T) {
		s := saved(0, "")
		s.ID = "legacy"
		_, err := newTestMutator(newFakeGateway()).Clear(ctx, s)
		if !errors.Is(err, apperrors.ErrNothingToClear) {
			t.Errorf("Clear() error = %v, want ErrNothingToClear", err)
		}
	})

	t.Run("empty difficulty", func(t *testing.T) {
		_, err := newTestMutator(newFakeGateway()).Clear(ctx, saved(3, "2024-12-03"), models.DifficultyHard)
		if !errors.Is(err, apperrors.ErrNothingToClear) {
			t.Errorf("Clear() error = %v, want ErrNothingToClear", err)
		}
	})

	t.Run("clears content", func(t *testing.T) {
		g := newFakeGateway()
		res, err := newTestMutator(g).Clear(ctx, saved(3, "2024-12-03"))
		if err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if !res.Slot.Easy.IsEmpty() || res.Slot.Date != "2024-12-03" || res.Slot.DayNumber != 3 {
			t.Errorf("Clear() slot = %+v", res.Slot)
		}
		if len(g.calls) != 1 || g.calls[0].key != "2024-12-03" {
			t.Errorf("calls = %v", g.calls)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	g := newFakeGateway()
	res, err := newTestMutator(g).Delete(ctx, schedule.Generate(60)[58])
	if err != nil || !res.LocalOnly {
		t.Errorf("Delete(template) = %+v, %v", res, err)
	}
	if len(g.calls) != 0 {
		t.Error("template delete reached the store")
	}

	s := saved(3, "2024-12-03")
	g.slots[s.ID] = s
	if _, err := newTestMutator(g).Delete(ctx, s); err != nil {
		t.Fatalf("Delete(persisted) error = %v", err)
	}
	if _, ok := g.slots[s.ID]; ok {
		t.Error("persisted slot not deleted")
	}

	g.failDrop = errBackend
	if _, err := newTestMutator(g).Delete(ctx, s); !errors.Is(err, apperrors.ErrPersistence) {
		t.Errorf("Delete() error = %v, want ErrPersistence", err)
	}
}

func TestDeletable(t *testing.T) {
	settings := models.DefaultSettings()
	tmpls := schedule.Generate(60)

	tests := []struct {
		name string
		slot models.DaySlot
		want bool
	}{
		{"protected template", tmpls[54], false},
		{"extended template", tmpls[55], true},
		{"saved", saved(3, "2024-12-03"), true},
	}
	for _, tt := range tests {
		if got := Deletable(tt.slot, settings); got != tt.want {
			t.Errorf("%s: Deletable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
