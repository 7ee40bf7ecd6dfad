// Package export writes the customer list in the downloadable formats:
// Excel, delimited text, a JSON backup and PDF. Every writer accepts an
// empty list and then produces the headers only.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tradescout/tradescout/internal/core"
)

// Format names an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatXLSX, FormatCSV, FormatJSON, FormatPDF:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename returns customers_YYYY-MM-DD.<ext> for the day of now.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("customers_%s.%s", now.Format("2006-01-02"), f)
}

// Write renders records in format f.
func Write(w io.Writer, f Format, records []core.Record, now time.Time) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records, now)
	case FormatPDF:
		return WriteListPDF(w, records, now)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
