package board

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/storage"
)

func TestRefreshTemplatesOnly(t *testing.T) {
	store := storage.NewMemoryStore()

	view, err := New(store).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(view.Slots) != 55 || view.Window != 55 {
		t.Errorf("view has %d slots, window %d", len(view.Slots), view.Window)
	}
}

func TestRefreshGrowsStoredWindow(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Upsert(ctx, "2025-01-24", models.DaySlot{DayNumber: 70, Date: "2025-01-24"}); err != nil {
		t.Fatal(err)
	}

	b := New(store)
	view, err := b.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if view.Window != 80 {
		t.Errorf("Window = %d, want 80", view.Window)
	}
	settings, _ := store.GetSettings()
	if settings.WindowSize != 80 {
		t.Errorf("stored window = %d, want 80", settings.WindowSize)
	}
	if !view.Slots[view.ByDay(70)].Extended {
		t.Error("day 70 should be flagged extended")
	}

	// Removing the far record does not shrink the window.
	if err := store.Delete(ctx, "2025-01-24"); err != nil {
		t.Fatal(err)
	}
	view, err = b.Refresh(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Window != 80 || len(view.Slots) != 80 {
		t.Errorf("window shrank to %d (%d slots)", view.Window, len(view.Slots))
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Upsert(ctx, "2024-12-03", models.DaySlot{DayNumber: 3, Date: "2024-12-03"}); err != nil {
		t.Fatal(err)
	}
	b := New(store)
	if _, err := b.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref     string
		wantDay int
		wantErr bool
	}{
		{"3", 3, false},
		{"2024-12-03", 3, false},
		{"template-day-9", 9, false},
		{"99", 0, true},
		{"2024-12-25", 0, true},
		{"nope", 0, true},
	}
	for _, tt := range tests {
		i, err := b.Lookup(tt.ref)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrLookup) {
				t.Errorf("Lookup(%q) error = %v, want ErrLookup", tt.ref, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.ref, err)
			continue
		}
		if got := b.View().Slots[i].DayNumber; got != tt.wantDay {
			t.Errorf("Lookup(%q) day = %d, want %d", tt.ref, got, tt.wantDay)
		}
	}
}
