// Package export renders filtered record sets as downloadable CSV, Excel
// or plain-text documents.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Format identifies an output format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatText  Format = "text"
)

var (
	// ErrUnsupportedFormat is returned for an unknown export format keyword.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrUnsupportedKind is returned when no dataset is registered for the
	// requested entity kind. Reaching it signals a caller bug, not a valid
	// runtime state, so it is an explicit error rather than a fallback.
	ErrUnsupportedKind = errors.New("no exporter registered for entity kind")
)

// ParseFormat maps the export query parameter to a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatCSV, FormatExcel, FormatText:
		return Format(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// Dataset is an already-filtered record set of one entity kind, flattened
// into export rows.
type Dataset interface {
	// Kind is the entity kind used in download filenames.
	Kind() string
	// Headers returns the column header row.
	Headers() []string
	// Rows returns one row of plain string cells per record. Missing
	// optional values are empty strings, numbers plain decimals.
	Rows() [][]string
	// Text renders the whole set as a human-readable document.
	Text() string
}

// Filename builds the attachment filename for a dataset and format.
func Filename(d Dataset, f Format, now time.Time) string {
	ext := map[Format]string{FormatCSV: "csv", FormatExcel: "xlsx", FormatText: "txt"}[f]
	return fmt.Sprintf("%s_%s.%s", d.Kind(), now.Format("20060102_150405"), ext)
}

// ContentType returns the MIME type for a format.
func ContentType(f Format) string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders the dataset in the given format.
func Write(w io.Writer, d Dataset, f Format) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, d)
	case FormatExcel:
		return writeExcel(w, d)
	case FormatText:
		_, err := io.WriteString(w, d.Text())
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func writeCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers()); err != nil {
		return err
	}
	for _, row := range d.Rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const maxColumnWidth = 50

func writeExcel(w io.Writer, d Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := d.Headers()
	rows := d.Rows()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		widths[col] = len(header)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if col < len(widths) && len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := width + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(w)); err != nil {
			return err
		}
	}

	return f.Write(w)
}
