package schedule

import (
	"sort"
	"time"

	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/models"
)

// Options tunes the merge of templates and saved records.
type Options struct {
	// SafetyMargin is the number of empty days kept after the highest saved day.
	SafetyMargin int
	// BaseDays is the length of the original challenge. Slots past it are
	// flagged Extended. Zero disables the flag.
	BaseDays int
}

// View is the ordered, duplicate-free merge of template and persisted slots.
// Window is the number of template days the view was generated with, which
// may be larger than the window that was asked for.
type View struct {
	Slots  []models.DaySlot
	Window int
}

// Reconcile overlays persisted records onto freshly generated templates.
//
// A record holding a day number inside the window replaces the template for
// that day. Records without a day number are appended after the numbered
// range. If any record sits within SafetyMargin of the end of the window the
// window grows to maxDay+SafetyMargin and the merge is redone. Neither input
// is modified and nothing is written.
func Reconcile(window int, persisted []models.DaySlot, opts Options) View {
	if window < 0 {
		window = 0
	}
	records := collapse(persisted)

	for {
		required := RequiredWindow(window, records, opts.SafetyMargin)
		if required > window {
			logger.Debug("Extending schedule window", "from", window, "to", required)
			window = required
			continue
		}
		return View{
			Slots:  overlay(Generate(window), records, opts),
			Window: window,
		}
	}
}

// RequiredWindow returns max(window, highest persisted day + margin).
func RequiredWindow(window int, persisted []models.DaySlot, margin int) int {
	maxDay := 0
	for _, rec := range persisted {
		if rec.Provenance == models.ProvenanceTemplate {
			continue
		}
		if rec.DayNumber > maxDay {
			maxDay = rec.DayNumber
		}
	}
	if maxDay == 0 {
		return window
	}
	if need := maxDay + margin; need > window {
		return need
	}
	return window
}

func overlay(templates []models.DaySlot, records []models.DaySlot, opts Options) []models.DaySlot {
	byDay := make(map[int]int, len(records))
	byDate := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.DayNumber > 0 {
			byDay[rec.DayNumber] = i
			continue
		}
		if rec.Date != "" {
			if _, ok := byDate[rec.Date]; !ok {
				byDate[rec.Date] = i
			}
		}
	}

	consumed := make([]bool, len(records))
	out := make([]models.DaySlot, 0, len(templates)+len(records))
	for _, tmpl := range templates {
		slot := tmpl
		if i, ok := byDay[tmpl.DayNumber]; ok {
			slot = records[i].Clone()
			slot.DayNumber = tmpl.DayNumber
			slot.Provenance = models.ProvenancePersisted
			consumed[i] = true
		}
		slot.Extended = opts.BaseDays > 0 && slot.DayNumber > opts.BaseDays
		out = append(out, slot)
	}

	for i, rec := range records {
		if consumed[i] {
			continue
		}
		slot := rec.Clone()
		slot.Provenance = models.ProvenancePersisted
		slot.Extended = true
		out = append(out, slot)
	}

	SortSlots(out)
	return out
}

// collapse drops template entries and keeps one record per day number. When
// two records claim the same day, the most recently updated one wins.
func collapse(persisted []models.DaySlot) []models.DaySlot {
	records := make([]models.DaySlot, 0, len(persisted))
	seen := make(map[int]int, len(persisted))
	for _, rec := range persisted {
		if rec.Provenance == models.ProvenanceTemplate {
			continue
		}
		if rec.DayNumber < 0 {
			rec.DayNumber = 0
		}
		if rec.DayNumber > 0 {
			if i, ok := seen[rec.DayNumber]; ok {
				if Newer(rec, records[i]) {
					logger.Warn("Duplicate day number in saved slots", "day", rec.DayNumber, "kept", rec.ID, "dropped", records[i].ID)
					records[i] = rec
				} else {
					logger.Warn("Duplicate day number in saved slots", "day", rec.DayNumber, "kept", records[i].ID, "dropped", rec.ID)
				}
				continue
			}
			seen[rec.DayNumber] = len(records)
		}
		records = append(records, rec)
	}
	return records
}

// Newer reports whether a was updated after b. Unparseable stamps compare as strings.
func Newer(a, b models.DaySlot) bool {
	ta, errA := time.Parse(time.RFC3339, a.UpdatedAt)
	tb, errB := time.Parse(time.RFC3339, b.UpdatedAt)
	if errA != nil || errB != nil {
		return a.UpdatedAt > b.UpdatedAt
	}
	return ta.After(tb)
}

// SortSlots orders slots with day numbers first, ascending, then the rest by
// ascending date. Slots with neither sort last.
func SortSlots(slots []models.DaySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		switch {
		case a.DayNumber > 0 && b.DayNumber > 0:
			return a.DayNumber < b.DayNumber
		case a.DayNumber > 0:
			return true
		case b.DayNumber > 0:
			return false
		case a.Date != "" && b.Date != "":
			return a.Date < b.Date
		default:
			return a.Date != "" && b.Date == ""
		}
	})
}
