package spreadsheet

import (
	"strings"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// Row markers
const (
	TotalMarker    = "总计"
	SubtotalMarker = "合计"
	compareMarker  = "对比"
	noteMarker     = "标的里"
)

// ParsedRow is one classified data row: *CategoryHeader, *AssetRow,
// *TotalRow or *SkipRow.
type ParsedRow interface {
	RowIndex() int
	parsedRow()
}

// CategoryHeader opens a category section without naming an asset.
type CategoryHeader struct {
	Index int
	Name  string
}

// AssetRow carries one asset's cells.
type AssetRow struct {
	Index    int
	Category string
	Name     string
	Cells    []string
}

// TotalRow is the sheet's grand total row.
type TotalRow struct {
	Index int
	Cells []string
}

// SkipRow is ignored by the importer.
type SkipRow struct {
	Index  int
	Reason string
}

func (r *CategoryHeader) RowIndex() int { return r.Index }
func (r *AssetRow) RowIndex() int       { return r.Index }
func (r *TotalRow) RowIndex() int       { return r.Index }
func (r *SkipRow) RowIndex() int        { return r.Index }

func (*CategoryHeader) parsedRow() {}
func (*AssetRow) parsedRow()       {}
func (*TotalRow) parsedRow()       {}
func (*SkipRow) parsedRow()        {}

// ClassifyRows walks the data rows top to bottom with a category cursor.
func ClassifyRows(rows [][]string) []ParsedRow {
	out := make([]ParsedRow, 0, len(rows))
	cursor := ""
	for i, row := range rows {
		var parsed ParsedRow
		parsed, cursor = ClassifyRow(i, cursor, row)
		out = append(out, parsed)
	}
	return out
}

// ClassifyRow classifies a single row and returns the cursor for the next one.
func ClassifyRow(index int, cursor string, row []string) (ParsedRow, string) {
	first, second := cell(row, 0), cell(row, 1)

	switch {
	case first == TotalMarker:
		return &TotalRow{Index: index, Cells: row}, cursor
	case strings.Contains(first, compareMarker), strings.Contains(first, noteMarker):
		return &SkipRow{Index: index, Reason: "comparison or note row"}, cursor
	case first == "" && second == "":
		return &SkipRow{Index: index, Reason: "empty row"}, cursor
	}

	category, ok := ResolveCategory(cursor, row)
	if !ok {
		return &SkipRow{Index: index, Reason: "no category"}, cursor
	}

	if first == category && second == "" {
		return &CategoryHeader{Index: index, Name: category}, category
	}
	if second == "" {
		return &SkipRow{Index: index, Reason: "missing asset name"}, category
	}
	if second == SubtotalMarker {
		return &SkipRow{Index: index, Reason: "subtotal row"}, category
	}
	return &AssetRow{Index: index, Category: category, Name: second, Cells: row}, category
}

// ResolveCategory returns the category a row belongs to: the recognised
// label in its first cell, else the current cursor. Only a recognised label
// moves the cursor.
func ResolveCategory(cursor string, row []string) (string, bool) {
	first := cell(row, 0)
	switch {
	case models.IsKnownCategory(first):
		return first, true
	case cursor != "":
		return cursor, true
	default:
		return "", false
	}
}
