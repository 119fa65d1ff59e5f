package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/daycard/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSlot() models.DaySlot {
	return models.DaySlot{
		DayNumber: 10,
		Date:      "2024-12-10",
		Easy: models.QuestionSlot{
			Title:       "Two Sum",
			Description: "Find two numbers that add up to target.",
			Link:        "https://leetcode.com/problems/two-sum/",
			Tags:        []string{"Array", "Hash Table"},
			Difficulty:  models.DifficultyEasy,
		},
		Medium:      models.QuestionSlot{Tags: []string{}, Difficulty: models.DifficultyMedium},
		Hard:        models.QuestionSlot{Tags: []string{}, Difficulty: models.DifficultyHard},
		CreatedAt:   "2024-11-01T09:00:00Z",
		UpdatedAt:   "2024-11-02T09:00:00Z",
		CreatedBy:   "admin",
		UpdatedBy:   "admin",
		Imported:    true,
		ImportBatch: "7f9c2ba4-e88f-4a1e-9d1f-2a3c0f1b5d11",
	}
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if diff := cmp.Diff(models.DefaultSettings(), settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	want := models.Settings{WindowSize: 80, SafetyMargin: 12, DeletableAfter: 60}

	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func TestUpsertAndGetAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	slot := sampleSlot()

	if err := store.Upsert(ctx, slot.Date, slot); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	slots, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("GetAll() returned %d slots, want 1", len(slots))
	}

	want := slot
	want.ID = slot.Date
	want.Provenance = models.ProvenancePersisted
	if diff := cmp.Diff(want, slots[0]); diff != "" {
		t.Errorf("slot mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsertReplacesByKey(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	slot := sampleSlot()

	if err := store.Upsert(ctx, slot.Date, slot); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	slot.Easy.Title = "3Sum"
	if err := store.Upsert(ctx, slot.Date, slot); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	slots, _ := store.GetAll(ctx)
	if len(slots) != 1 || slots[0].Easy.Title != "3Sum" {
		t.Errorf("GetAll() = %+v, want a single replaced slot", slots)
	}
}

func TestUpsertWithoutDayNumber(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	slot := models.DaySlot{Date: "2025-03-01"}
	if err := store.Upsert(ctx, slot.Date, slot); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	slots, _ := store.GetAll(ctx)
	if len(slots) != 1 || slots[0].DayNumber != 0 || slots[0].Date != "2025-03-01" {
		t.Errorf("GetAll() = %+v", slots)
	}
}

func TestUpsertRequiresKey(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Upsert(context.Background(), "", sampleSlot()); err == nil {
		t.Error("Upsert() with empty key should fail")
	}
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	slot := sampleSlot()

	if err := store.Upsert(ctx, slot.Date, slot); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Delete(ctx, slot.Date); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "missing-key"); err != nil {
		t.Errorf("Delete() of a missing key = %v, want nil", err)
	}

	slots, _ := store.GetAll(ctx)
	if len(slots) != 0 {
		t.Errorf("GetAll() after delete = %d slots", len(slots))
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := first.Upsert(context.Background(), "2024-12-10", sampleSlot()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer second.Close()
	slots, err := second.GetAll(context.Background())
	if err != nil || len(slots) != 1 {
		t.Errorf("GetAll() = %d slots, %v", len(slots), err)
	}
}
