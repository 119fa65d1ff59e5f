package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/schedule"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateDayNumber ConflictType = "duplicate_day_number"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictMissingIdentifiers ConflictType = "missing_identifiers"
	ConflictKeyMismatch        ConflictType = "key_mismatch"
	ConflictNegativeDayNumber  ConflictType = "negative_day_number"
)

// Conflict is one problem found in the saved slots.
type Conflict struct {
	Type        ConflictType
	Description string
	DayNumber   int
	Date        string
	Keys        []string // storage keys involved
}

type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of type t.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// ValidateSlots checks saved slots for records the schedule cannot place
// cleanly. Slots are expected as returned by a gateway, with ID set to the
// storage key.
func ValidateSlots(slots []models.DaySlot) ValidationResult {
	var result ValidationResult

	byDay := make(map[int][]string)
	for _, s := range slots {
		switch {
		case s.DayNumber < 0:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeDayNumber,
				Description: fmt.Sprintf("Slot %s has negative day number %d", s.ID, s.DayNumber),
				DayNumber:   s.DayNumber,
				Keys:        []string{s.ID},
			})
		case s.DayNumber > 0:
			byDay[s.DayNumber] = append(byDay[s.DayNumber], s.ID)
		}

		if s.Date != "" && !models.IsValidDate(s.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Slot %s has invalid date %q (expected YYYY-MM-DD)", s.ID, s.Date),
				Date:        s.Date,
				Keys:        []string{s.ID},
			})
		}
		if s.DayNumber <= 0 && s.Date == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingIdentifiers,
				Description: fmt.Sprintf("Slot %s has neither a day number nor a date", s.ID),
				Keys:        []string{s.ID},
			})
		}
		if s.Date != "" && s.ID != s.Date {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictKeyMismatch,
				Description: fmt.Sprintf("Slot stored under %s carries date %s", s.ID, s.Date),
				Date:        s.Date,
				Keys:        []string{s.ID},
			})
		}
	}

	days := make([]int, 0, len(byDay))
	for d, keys := range byDay {
		if len(keys) > 1 {
			days = append(days, d)
		}
	}
	sort.Ints(days)
	for _, d := range days {
		keys := append([]string(nil), byDay[d]...)
		sort.Strings(keys)
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateDayNumber,
			Description: fmt.Sprintf("Day %d is held by %d slots: %s", d, len(keys), strings.Join(keys, ", ")),
			DayNumber:   d,
			Keys:        keys,
		})
	}

	return result
}

// AutoFixDuplicateDays deletes every slot but the most recently updated one
// for each duplicated day number, matching the record the schedule shows.
func AutoFixDuplicateDays(ctx context.Context, conflicts []Conflict, slots []models.DaySlot, deleteFunc func(ctx context.Context, key string) error) []FixAction {
	actions := []FixAction{}

	byKey := make(map[string]models.DaySlot, len(slots))
	for _, s := range slots {
		byKey[s.ID] = s
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateDayNumber || len(conflict.Keys) <= 1 {
			continue
		}

		var candidates []models.DaySlot
		for _, k := range conflict.Keys {
			if s, ok := byKey[k]; ok {
				candidates = append(candidates, s)
			}
		}
		if len(candidates) <= 1 {
			continue
		}

		keep := candidates[0]
		for _, s := range candidates[1:] {
			if schedule.Newer(s, keep) {
				keep = s
			}
		}

		var deleted, failed []string
		for _, s := range candidates {
			if s.ID == keep.ID {
				continue
			}
			if err := deleteFunc(ctx, s.ID); err != nil {
				failed = append(failed, s.ID)
				continue
			}
			deleted = append(deleted, s.ID)
		}

		if len(deleted) > 0 {
			msg := fmt.Sprintf("Removed %d duplicate slot(s) for day %d (kept %s, removed: %v)", len(deleted), conflict.DayNumber, keep.ID, deleted)
			if len(failed) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failed)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		} else if len(failed) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for day %d: %v", conflict.DayNumber, failed),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
