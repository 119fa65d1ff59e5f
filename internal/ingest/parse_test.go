package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/daycard/internal/models"
)

func TestParseDayNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"3.0", 3},
		{"3.5", 0},
		{"0", 0},
		{"-4", 0},
		{"", 0},
		{"day three", 0},
	}
	for _, tt := range tests {
		if got := ParseDayNumber(tt.in); got != tt.want {
			t.Errorf("ParseDayNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso", "2024-12-01", "2024-12-01"},
		{"iso unpadded", "2024-2-5", "2024-02-05"},
		{"iso with time", "2024-12-01T10:00:00Z", "2024-12-01"},
		{"iso with space time", "2024-12-01 00:00:00", "2024-12-01"},
		{"year first slash", "2024/12/01", "2024-12-01"},
		{"month first slash", "12/01/2024", "2024-12-01"},
		{"month first dash", "12-01-2024", "2024-12-01"},
		{"two digit year slash", "12/01/24", "2024-12-01"},
		{"two digit year dash", "1-5-25", "2025-01-05"},
		{"month first is not day first", "01/12/2024", "2024-01-12"},
		{"day over twelve in month slot", "13/01/2024", ""},
		{"impossible date", "2024-02-30", ""},
		{"leap day", "02/29/2024", "2024-02-29"},
		{"mixed separators", "12/01-2024", ""},
		{"text", "next tuesday", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.in); got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := map[string]models.Difficulty{
		"easy":    models.DifficultyEasy,
		" HARD ":  models.DifficultyHard,
		"Medium":  models.DifficultyMedium,
		"extreme": models.DifficultyMedium,
		"":        models.DifficultyMedium,
	}
	for in, want := range tests {
		if got := NormalizeDifficulty(in); got != want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Array, Hash Table", []string{"Array", "Hash Table"}},
		{" Stack ,, ,Queue,", []string{"Stack", "Queue"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseTags(tt.in)); diff != "" {
			t.Errorf("ParseTags(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
