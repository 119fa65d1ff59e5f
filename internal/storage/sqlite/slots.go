package sqlite

import (
	"context"
	"fmt"

	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/storage"
)

const slotColumns = `key, day_number, date, easy_question, medium_question, hard_question,
	created_at, updated_at, created_by, updated_by, imported, import_batch`

func (s *Store) GetAll(ctx context.Context) ([]models.DaySlot, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}
	rows, err := s.db.QueryContext(ctx, "SELECT "+slotColumns+" FROM day_slots ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.DaySlot
	for rows.Next() {
		var r storage.SlotRow
		err := rows.Scan(
			&r.Key, &r.DayNumber, &r.Date, &r.Easy, &r.Medium, &r.Hard,
			&r.CreatedAt, &r.UpdatedAt, &r.CreatedBy, &r.UpdatedBy, &r.Imported, &r.ImportBatch,
		)
		if err != nil {
			return nil, err
		}
		slot, err := storage.FromRow(r)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Store) Upsert(ctx context.Context, key string, slot models.DaySlot) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if key == "" {
		return fmt.Errorf("cannot save slot %s without a key", slot.Label())
	}
	r, err := storage.ToRow(key, slot)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO day_slots (`+slotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Key, r.DayNumber, r.Date, r.Easy, r.Medium, r.Hard,
		r.CreatedAt, r.UpdatedAt, r.CreatedBy, r.UpdatedBy, r.Imported, r.ImportBatch,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM day_slots WHERE key = ?", key)
	return err
}
