// Package spreadsheet decodes portfolio workbooks: the data sheet with one
// row per asset and one column group per snapshot, plus an optional sheet of
// exchange rates.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

// Workbook is the decoded content of an uploaded file. RatesRows is nil when
// the workbook has a single sheet.
type Workbook struct {
	HeaderRow []string
	DataRows  [][]string
	RatesRows [][]string
}

// Parse reads an .xlsx workbook. Sheet 1 is the data sheet, sheet 2 (if
// any) holds exchange rates. Any decoding failure is a *errors.ParseError.
func Parse(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &apperrors.ParseError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &apperrors.ParseError{Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &apperrors.ParseError{Err: fmt.Errorf("reading sheet %q: %w", sheets[0], err)}
	}

	wb := &Workbook{}
	if len(rows) > 0 {
		wb.HeaderRow = trimRow(rows[0])
		for _, row := range rows[1:] {
			wb.DataRows = append(wb.DataRows, trimRow(row))
		}
	}

	if len(sheets) > 1 {
		rates, err := f.GetRows(sheets[1], excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &apperrors.ParseError{Err: fmt.Errorf("reading sheet %q: %w", sheets[1], err)}
		}
		wb.RatesRows = make([][]string, 0, len(rates))
		for _, row := range rates {
			wb.RatesRows = append(wb.RatesRows, trimRow(row))
		}
	}

	return wb, nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// cell returns row[i], or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
