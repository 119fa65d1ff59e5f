package schedule

import "github.com/julianstephens/daycard/internal/models"

// Generate returns n template slots numbered 1..n with no date and no
// question content. n <= 0 yields an empty slice.
func Generate(n int) []models.DaySlot {
	if n <= 0 {
		return []models.DaySlot{}
	}
	slots := make([]models.DaySlot, n)
	for i := range slots {
		day := i + 1
		slots[i] = models.DaySlot{
			ID:         models.TemplateID(day),
			DayNumber:  day,
			Easy:       models.QuestionSlot{Difficulty: models.DifficultyEasy},
			Medium:     models.QuestionSlot{Difficulty: models.DifficultyMedium},
			Hard:       models.QuestionSlot{Difficulty: models.DifficultyHard},
			Provenance: models.ProvenanceTemplate,
		}
	}
	return slots
}
