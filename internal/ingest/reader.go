package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/julianstephens/daycard/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile loads every data row of a .csv or .xlsx file. Any failure to
// read the table is reported as a single ErrParse error and no rows are
// returned.
func ReadFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q (use .csv or .xlsx)", apperrors.ErrParse, filepath.Ext(path))
	}
}

// ReadCSV parses comma-separated input with a header row.
func ReadCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
	}
	return fromRecords(records, 2)
}

// ReadXLSX parses the first worksheet of a workbook.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrParse)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %w", apperrors.ErrParse, sheets[0], err)
	}
	return fromRecords(records, 2)
}

// fromRecords treats the first record as the header. firstLine is the
// spreadsheet row number of the first data record.
func fromRecords(records [][]string, firstLine int) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrParse)
	}
	header := records[0]
	named := 0
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			named++
		}
	}
	if named == 0 {
		return nil, fmt.Errorf("%w: header row is empty", apperrors.ErrParse)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, NewRow(firstLine+i, header, rec))
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
