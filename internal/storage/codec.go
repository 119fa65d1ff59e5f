package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daycard/internal/models"
)

// EncodeQuestion serializes a question for a JSON/JSONB column.
func EncodeQuestion(q models.QuestionSlot) (string, error) {
	if q.Tags == nil {
		q.Tags = []string{}
	}
	data, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s question: %w", q.Difficulty, err)
	}
	return string(data), nil
}

// DecodeQuestion parses a stored question column. The difficulty is forced to
// d so a column can never hold another level's question.
func DecodeQuestion(raw string, d models.Difficulty) (models.QuestionSlot, error) {
	q := models.QuestionSlot{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return models.QuestionSlot{}, fmt.Errorf("failed to parse %s question: %w", d, err)
		}
	}
	q.Difficulty = d
	return q, nil
}

// SlotRow is the column layout shared by the SQL providers.
type SlotRow struct {
	Key         string
	DayNumber   sql.NullInt64
	Date        sql.NullString
	Easy        string
	Medium      string
	Hard        string
	CreatedAt   string
	UpdatedAt   string
	CreatedBy   string
	UpdatedBy   string
	Imported    bool
	ImportBatch string
}

// ToRow flattens a slot into its column values.
func ToRow(key string, slot models.DaySlot) (SlotRow, error) {
	row := SlotRow{
		Key:         key,
		CreatedAt:   slot.CreatedAt,
		UpdatedAt:   slot.UpdatedAt,
		CreatedBy:   slot.CreatedBy,
		UpdatedBy:   slot.UpdatedBy,
		Imported:    slot.Imported,
		ImportBatch: slot.ImportBatch,
	}
	if slot.DayNumber > 0 {
		row.DayNumber = sql.NullInt64{Int64: int64(slot.DayNumber), Valid: true}
	}
	if slot.Date != "" {
		row.Date = sql.NullString{String: slot.Date, Valid: true}
	}

	var err error
	if row.Easy, err = EncodeQuestion(withDifficulty(slot.Easy, models.DifficultyEasy)); err != nil {
		return SlotRow{}, err
	}
	if row.Medium, err = EncodeQuestion(withDifficulty(slot.Medium, models.DifficultyMedium)); err != nil {
		return SlotRow{}, err
	}
	if row.Hard, err = EncodeQuestion(withDifficulty(slot.Hard, models.DifficultyHard)); err != nil {
		return SlotRow{}, err
	}
	return row, nil
}

// FromRow rebuilds a persisted slot from its column values.
func FromRow(row SlotRow) (models.DaySlot, error) {
	slot := models.DaySlot{
		ID:          row.Key,
		Provenance:  models.ProvenancePersisted,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		CreatedBy:   row.CreatedBy,
		UpdatedBy:   row.UpdatedBy,
		Imported:    row.Imported,
		ImportBatch: row.ImportBatch,
	}
	if row.DayNumber.Valid {
		slot.DayNumber = int(row.DayNumber.Int64)
	}
	if row.Date.Valid {
		slot.Date = row.Date.String
	}

	var err error
	if slot.Easy, err = DecodeQuestion(row.Easy, models.DifficultyEasy); err != nil {
		return models.DaySlot{}, fmt.Errorf("slot %s: %w", row.Key, err)
	}
	if slot.Medium, err = DecodeQuestion(row.Medium, models.DifficultyMedium); err != nil {
		return models.DaySlot{}, fmt.Errorf("slot %s: %w", row.Key, err)
	}
	if slot.Hard, err = DecodeQuestion(row.Hard, models.DifficultyHard); err != nil {
		return models.DaySlot{}, fmt.Errorf("slot %s: %w", row.Key, err)
	}
	return slot, nil
}

func withDifficulty(q models.QuestionSlot, d models.Difficulty) models.QuestionSlot {
	q.Difficulty = d
	return q
}
