package ingest

import "strings"

// Field is one logical column of an import file.
type Field int

const (
	FieldDayNumber Field = iota
	FieldTitle
	FieldDescription
	FieldLink
	FieldDifficulty
	FieldTags
	FieldDate
)

func (f Field) String() string {
	switch f {
	case FieldDayNumber:
		return "day number"
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	case FieldLink:
		return "link"
	case FieldDifficulty:
		return "difficulty"
	case FieldTags:
		return "tags"
	case FieldDate:
		return "date"
	default:
		return "unknown"
	}
}

// Aliases lists the accepted headers per field in precedence order.
// Matching is case-insensitive.
var Aliases = map[Field][]string{
	FieldDayNumber:   {"ID", "Day", "day_number", "Day Number"},
	FieldTitle:       {"TITLE", "Title", "Question"},
	FieldDescription: {"Description", "DESCRIPTION", "Problem Description", "Details", "Problem", "Question Description", "Desc", "Problem Statement", "Statement"},
	FieldLink:        {"Question link", "link", "url", "Link", "Problem Link", "Question URL"},
	FieldDifficulty:  {"Difficulty", "Level"},
	FieldTags:        {"Tags", "Topics", "Tag"},
	FieldDate:        {"Upload Date", "date", "Due Date", "Assignment Date", "Scheduled Date"},
}

// Row is one data row keyed by lower-cased, trimmed header.
type Row struct {
	// Line is the 1-based spreadsheet row; the header is line 1.
	Line   int
	Values map[string]string
}

// NewRow pairs a header with one record. Missing trailing cells read as "".
func NewRow(line int, header, record []string) Row {
	values := make(map[string]string, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := values[key]; dup {
			continue
		}
		if i < len(record) {
			values[key] = record[i]
		} else {
			values[key] = ""
		}
	}
	return Row{Line: line, Values: values}
}

// Resolve returns the first non-empty value among field's aliases.
func (r Row) Resolve(field Field) (string, bool) {
	for _, alias := range Aliases[field] {
		if v := strings.TrimSpace(r.Values[normalizeHeader(alias)]); v != "" {
			return v, true
		}
	}
	return "", false
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
