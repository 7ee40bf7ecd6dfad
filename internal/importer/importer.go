// Package importer turns uploaded customer files into validated form inputs.
//
// Three formats are accepted: Excel workbooks, delimited text and the JSON
// backup written by the export package. Every format is reduced to rows of
// header-keyed cells, then each row goes through the same mapping,
// normalization and validation. A bad row is reported and skipped; it never
// aborts the file.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tradescout/tradescout/internal/core"
)

// Format names an import file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for a format other than xlsx, csv or json.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptyFile is returned when a file has no data rows.
	ErrEmptyFile = errors.New("empty file: no data rows")
)

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch s {
	case "xlsx", "xls", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json", "backup":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Result is the outcome of parsing one file.
type Result struct {
	Valid     []core.Input `json:"valid"`
	Errors    []string     `json:"errors,omitempty"`
	TotalRows int          `json:"totalRows"`
	ValidRows int          `json:"validRows"`
}

// Parse reads r as the given format. Row problems are collected in
// Result.Errors; a returned error means the file as a whole was unusable.
func Parse(format Format, r io.Reader) (Result, error) {
	switch format {
	case FormatCSV:
		return parseCSV(r)
	case FormatXLSX:
		return parseXLSX(r)
	case FormatJSON:
		return parseJSON(r)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func parseCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(CleanText(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("invalid csv: %w", err)
	}
	return fromTable(records, "csv")
}

func parseXLSX(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("invalid spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Result{}, ErrEmptyFile
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("invalid spreadsheet: read sheet %q: %w", sheet, err)
	}
	return fromTable(rows, "spreadsheet")
}

// fromTable treats the first non-blank row as the header.
func fromTable(table [][]string, kind string) (Result, error) {
	start := 0
	for start < len(table) && blankRow(table[start]) {
		start++
	}
	if start == len(table) {
		return Result{}, ErrEmptyFile
	}

	columns := mapHeader(table[start])
	if len(columns) == 0 {
		return Result{}, fmt.Errorf("invalid %s: header has no recognised columns", kind)
	}

	var rows []row
	for i, cells := range table[start+1:] {
		if blankRow(cells) {
			continue
		}
		rw := row{number: i + 1, values: make(map[string]string, len(columns))}
		for field, col := range columns {
			if col < len(cells) {
				rw.values[field] = cells[col]
			}
		}
		rows = append(rows, rw)
	}
	return collect(rows)
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// collect runs every row through buildInput.
func collect(rows []row) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrEmptyFile
	}

	res := Result{TotalRows: len(rows), Valid: []core.Input{}}
	for _, rw := range rows {
		if rw.problem != "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s", rw.number, rw.problem))
			continue
		}
		in, problems := buildInput(rw.values)
		if len(problems) > 0 {
			for _, p := range problems {
				res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s", rw.number, p))
			}
			continue
		}
		res.Valid = append(res.Valid, in)
	}
	res.ValidRows = len(res.Valid)
	return res, nil
}
