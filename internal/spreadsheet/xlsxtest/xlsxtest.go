// Package xlsxtest builds in-memory workbooks for tests.
package xlsxtest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is a named grid of cell values.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// Build writes the sheets, in order, to an .xlsx byte slice.
func Build(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %q: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			addr, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(s.Name, addr, &values); err != nil {
				t.Fatalf("set row %d: %v", r, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// ReadRows returns the raw rows of a named sheet from an .xlsx byte slice.
func ReadRows(t testing.TB, data []byte, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read sheet %q: %v", sheet, err)
	}
	return rows
}
