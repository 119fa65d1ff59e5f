package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/daycard/internal/config"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := &Context{
		Ctx:     context.Background(),
		Store:   store,
		Target:  config.Target{Value: dbPath, Kind: config.KindSQLite, Source: config.SourceFlag},
		Actor:   "tester",
		Out:     out,
		Confirm: func(string, string) (bool, error) { return true, nil },
	}
	return ctx, out
}

func seed(t *testing.T, ctx *Context, slots ...models.DaySlot) {
	t.Helper()
	for _, s := range slots {
		s.ID = s.Date
		if err := ctx.Store.Upsert(context.Background(), s.Date, s); err != nil {
			t.Fatalf("seed %s: %v", s.Date, err)
		}
	}
}

func savedSlot(day int, date, easyTitle string) models.DaySlot {
	s := models.DaySlot{DayNumber: day, Date: date, UpdatedAt: "2025-01-01T00:00:00Z"}
	if easyTitle != "" {
		s.Easy = models.QuestionSlot{Title: easyTitle, Difficulty: models.DifficultyEasy, Tags: []string{}}
	}
	return s
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func getAll(t *testing.T, ctx *Context) []models.DaySlot {
	t.Helper()
	slots, err := ctx.Store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	return slots
}
