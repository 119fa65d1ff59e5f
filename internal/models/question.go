package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycard/internal/constants"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the three question levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty maps a case-insensitive name onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

type QuestionSlot struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Link        string     `json:"link" yaml:"link"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
}

// DefaultQuestion returns the placeholder question shown for a day that has
// no content yet.
func DefaultQuestion(day int, d Difficulty) QuestionSlot {
	return QuestionSlot{
		Title:       fmt.Sprintf(constants.DefaultTitleFormat, day),
		Description: constants.DefaultDescription,
		Link:        constants.DefaultLink,
		Tags:        []string{},
		Difficulty:  d,
	}
}

// IsEmpty reports whether the question carries no content.
func (q QuestionSlot) IsEmpty() bool {
	return q.Title == "" && q.Description == "" && q.Link == "" && len(q.Tags) == 0
}

// Normalize trims text fields and drops empty or repeated tags, keeping the
// first occurrence of each.
func (q QuestionSlot) Normalize() QuestionSlot {
	q.Title = strings.TrimSpace(q.Title)
	q.Description = strings.TrimSpace(q.Description)
	q.Link = strings.TrimSpace(q.Link)
	q.Tags = DedupeTags(q.Tags)
	return q
}

// DedupeTags trims each tag and removes empties and duplicates.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Clone returns a copy that shares no backing storage with q.
func (q QuestionSlot) Clone() QuestionSlot {
	if q.Tags != nil {
		q.Tags = append([]string(nil), q.Tags...)
	}
	return q
}
