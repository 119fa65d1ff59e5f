package schedule

import "github.com/julianstephens/daycard/internal/models"

// ByDay returns the index of the slot holding day n, or -1.
func (v View) ByDay(n int) int {
	if n <= 0 {
		return -1
	}
	// Numbered slots are dense and sorted, so day n normally sits at n-1.
	if n <= len(v.Slots) && v.Slots[n-1].DayNumber == n {
		return n - 1
	}
	for i, s := range v.Slots {
		if s.DayNumber == n {
			return i
		}
	}
	return -1
}

// ByDate returns the index of the first slot with the given date, or -1.
func (v View) ByDate(date string) int {
	if date == "" {
		return -1
	}
	for i, s := range v.Slots {
		if s.Date == date {
			return i
		}
	}
	return -1
}

// ByID returns the index of the slot with the given id, or -1.
func (v View) ByID(id string) int {
	for i, s := range v.Slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Find looks a slot up by day number first and then by date.
func (v View) Find(day int, date string) (int, bool) {
	if i := v.ByDay(day); i >= 0 {
		return i, true
	}
	if i := v.ByDate(date); i >= 0 {
		return i, true
	}
	return -1, false
}

// Set returns a copy of v with the slot at i replaced.
func (v View) Set(i int, slot models.DaySlot) View {
	slots := make([]models.DaySlot, len(v.Slots))
	copy(slots, v.Slots)
	slots[i] = slot
	return View{Slots: slots, Window: v.Window}
}

// Remove returns a copy of v without the slot at i. It touches nothing in
// the backing store.
func (v View) Remove(i int) View {
	slots := make([]models.DaySlot, 0, len(v.Slots)-1)
	slots = append(slots, v.Slots[:i]...)
	slots = append(slots, v.Slots[i+1:]...)
	return View{Slots: slots, Window: v.Window}
}

// Persisted returns only the slots backed by a saved record.
func (v View) Persisted() []models.DaySlot {
	var out []models.DaySlot
	for _, s := range v.Slots {
		if s.IsPersisted() {
			out = append(out, s)
		}
	}
	return out
}

// Conflicting returns the index of a persisted slot, other than the one with
// selfID, that already holds day or date. It returns -1 when there is none.
func (v View) Conflicting(selfID string, day int, date string) int {
	for i, s := range v.Slots {
		if !s.IsPersisted() || s.ID == selfID {
			continue
		}
		if day > 0 && s.DayNumber == day {
			return i
		}
		if date != "" && s.Date == date {
			return i
		}
	}
	return -1
}
