package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/models"
)

// ParseDayNumber returns the day as a positive integer, or 0 when s is
// empty, not a number, or not positive. Integral floats such as "3.0" are
// accepted since spreadsheets often emit them.
func ParseDayNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

var (
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ].*)?$`)
	slashISODate = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	// Month first: 12/01/2024 is December 1st.
	monthFirst = regexp.MustCompile(`^(\d{1,2})([/-])(\d{1,2})([/-])(\d{4}|\d{2})$`)
)

// ParseDate normalizes s to YYYY-MM-DD. It accepts YYYY-MM-DD (optionally
// followed by a time), YYYY/MM/DD, and MM/DD/YYYY, MM-DD-YYYY, MM/DD/YY or
// MM-DD-YY. Two-digit years are in 2000-2099. Anything else, including
// dates that do not exist, yields "".
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var y, m, d string
	switch {
	case isoDate.MatchString(s):
		p := isoDate.FindStringSubmatch(s)
		y, m, d = p[1], p[2], p[3]
	case slashISODate.MatchString(s):
		p := slashISODate.FindStringSubmatch(s)
		y, m, d = p[1], p[2], p[3]
	case monthFirst.MatchString(s):
		p := monthFirst.FindStringSubmatch(s)
		if p[2] != p[4] {
			return ""
		}
		m, d, y = p[1], p[3], p[5]
		if len(y) == 2 {
			y = "20" + y
		}
	default:
		return ""
	}

	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ""
	}
	return t.Format(constants.DateFormat)
}

// NormalizeDifficulty maps s onto a difficulty, defaulting to medium.
func NormalizeDifficulty(s string) models.Difficulty {
	if d, ok := models.ParseDifficulty(s); ok {
		return d
	}
	return models.DifficultyMedium
}

// ParseTags splits a comma-separated list, trimming entries and dropping
// empty ones.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
