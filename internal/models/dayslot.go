package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daycard/internal/constants"
)

type Provenance string

const (
	ProvenanceTemplate  Provenance = "template"
	ProvenancePersisted Provenance = "persisted"
)

type DaySlot struct {
	ID          string       `json:"id" yaml:"id"`
	DayNumber   int          `json:"day_number,omitempty" yaml:"day_number,omitempty"`
	Date        string       `json:"date,omitempty" yaml:"date,omitempty"` // YYYY-MM-DD format
	Easy        QuestionSlot `json:"easy_question" yaml:"easy_question"`
	Medium      QuestionSlot `json:"medium_question" yaml:"medium_question"`
	Hard        QuestionSlot `json:"hard_question" yaml:"hard_question"`
	Provenance  Provenance   `json:"provenance" yaml:"provenance"`
	Extended    bool         `json:"extended,omitempty" yaml:"extended,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty" yaml:"created_at,omitempty"` // RFC3339 timestamp
	UpdatedAt   string       `json:"updated_at,omitempty" yaml:"updated_at,omitempty"` // RFC3339 timestamp
	CreatedBy   string       `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	UpdatedBy   string       `json:"updated_by,omitempty" yaml:"updated_by,omitempty"`
	Imported    bool         `json:"imported,omitempty" yaml:"imported,omitempty"`
	ImportBatch string       `json:"import_batch,omitempty" yaml:"import_batch,omitempty"`
}

var (
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidDayNumber = errors.New("day number must be at least 1")
)

// TemplateID is the synthetic identifier carried by generated slots.
func TemplateID(day int) string {
	return fmt.Sprintf("%s%d", constants.TemplateIDPrefix, day)
}

// PendingID is the placeholder identifier for a slot known only by day number.
func PendingID(day int) string {
	return fmt.Sprintf("%s%d", constants.PendingIDPrefix, day)
}

// IsSyntheticID reports whether id was generated rather than assigned by a save.
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, constants.TemplateIDPrefix) || strings.HasPrefix(id, constants.PendingIDPrefix)
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	t, err := time.Parse(constants.DateFormat, s)
	return err == nil && t.Format(constants.DateFormat) == s
}

func (s DaySlot) IsPersisted() bool {
	return s.Provenance == ProvenancePersisted
}

// Key returns the storage key a save would use: the slot's date.
func (s DaySlot) Key() string {
	return s.Date
}

// Question returns the question for the given difficulty.
func (s DaySlot) Question(d Difficulty) QuestionSlot {
	switch d {
	case DifficultyEasy:
		return s.Easy
	case DifficultyHard:
		return s.Hard
	default:
		return s.Medium
	}
}

// WithQuestion returns a copy of s with the question for q.Difficulty
// replaced. The other two questions are left as they were.
func (s DaySlot) WithQuestion(q QuestionSlot) DaySlot {
	out := s.Clone()
	switch q.Difficulty {
	case DifficultyEasy:
		out.Easy = q.Clone()
	case DifficultyHard:
		out.Hard = q.Clone()
	default:
		q.Difficulty = DifficultyMedium
		out.Medium = q.Clone()
	}
	return out
}

// HasQuestions reports whether any of the three questions has content.
func (s DaySlot) HasQuestions() bool {
	return !s.Easy.IsEmpty() || !s.Medium.IsEmpty() || !s.Hard.IsEmpty()
}

// Clone returns a deep copy of s.
func (s DaySlot) Clone() DaySlot {
	s.Easy = s.Easy.Clone()
	s.Medium = s.Medium.Clone()
	s.Hard = s.Hard.Clone()
	return s
}

// Label is a short human-readable name for the slot.
func (s DaySlot) Label() string {
	switch {
	case s.DayNumber > 0 && s.Date != "":
		return fmt.Sprintf("day %d (%s)", s.DayNumber, s.Date)
	case s.DayNumber > 0:
		return fmt.Sprintf("day %d", s.DayNumber)
	case s.Date != "":
		return s.Date
	default:
		return s.ID
	}
}

// Validate checks the fields required before a slot can be saved.
func (s DaySlot) Validate() error {
	if s.Date == "" {
		return ErrMissingDate
	}
	if !IsValidDate(s.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s.Date)
	}
	if s.DayNumber < 1 {
		return ErrInvalidDayNumber
	}
	return nil
}
