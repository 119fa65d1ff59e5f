package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daycard/internal/models"
)

// Output formats shared by list and export commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// slotTable renders slots as a bordered table.
func slotTable(slots []models.DaySlot) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DAY", "DATE", "EASY", "MEDIUM", "HARD", "SOURCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range slots {
		t.Row(dayLabel(s), orDash(s.Date), title(s.Easy), title(s.Medium), title(s.Hard), source(s))
	}
	return t.String()
}

func dayLabel(s models.DaySlot) string {
	if s.DayNumber <= 0 {
		return "-"
	}
	return strconv.Itoa(s.DayNumber)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func title(q models.QuestionSlot) string {
	if q.Title == "" {
		return "-"
	}
	if r := []rune(q.Title); len(r) > 32 {
		return string(r[:31]) + "…"
	}
	return q.Title
}

func source(s models.DaySlot) string {
	parts := []string{string(s.Provenance)}
	if s.Extended {
		parts = append(parts, "extended")
	}
	if s.Imported {
		parts = append(parts, "imported")
	}
	return strings.Join(parts, ",")
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// describeSlot prints every field of one slot.
func describeSlot(w io.Writer, s models.DaySlot) {
	fmt.Fprintf(w, "Day:      %s\n", dayLabel(s))
	fmt.Fprintf(w, "Date:     %s\n", orDash(s.Date))
	fmt.Fprintf(w, "Key:      %s\n", s.ID)
	fmt.Fprintf(w, "Source:   %s\n", source(s))
	if s.UpdatedAt != "" {
		fmt.Fprintf(w, "Updated:  %s by %s\n", s.UpdatedAt, orDash(s.UpdatedBy))
	}
	if s.CreatedAt != "" {
		fmt.Fprintf(w, "Created:  %s by %s\n", s.CreatedAt, orDash(s.CreatedBy))
	}
	if s.ImportBatch != "" {
		fmt.Fprintf(w, "Import:   %s\n", s.ImportBatch)
	}
	for _, d := range models.Difficulties {
		q := s.Question(d)
		fmt.Fprintf(w, "\n[%s]\n", d)
		if q.IsEmpty() {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		fmt.Fprintf(w, "  Title:       %s\n", q.Title)
		fmt.Fprintf(w, "  Description: %s\n", q.Description)
		fmt.Fprintf(w, "  Link:        %s\n", q.Link)
		if len(q.Tags) > 0 {
			fmt.Fprintf(w, "  Tags:        %s\n", strings.Join(q.Tags, ", "))
		}
	}
}
