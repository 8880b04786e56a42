package spreadsheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Header markers
const (
	CurrencyHeader = "币种"
	OriginalSuffix = "原始金额"
	ValueSuffix    = "人民币价值"
	ChangeHeader   = "期末减期初"
)

var (
	originalPattern = regexp.MustCompile(`(\d{4})\s*` + OriginalSuffix)
	valuePattern    = regexp.MustCompile(`(\d{4})\s*` + ValueSuffix)
)

type headerKind int

const (
	headerNone headerKind = iota
	headerCurrency
	headerOriginal
	headerValue
	headerChange
)

type headerCell struct {
	kind  headerKind
	label string
}

// SnapshotColumns locates one snapshot's cells. OriginalCol is -1 for the
// old CNY-only format; ValueCol equals OriginalCol when the sheet has no
// separate CNY column; ChangeCol is -1 when absent.
type SnapshotColumns struct {
	Label       string
	OriginalCol int
	ValueCol    int
	ChangeCol   int
}

// HasOriginal reports whether the column group carries native amounts.
func (c SnapshotColumns) HasOriginal() bool { return c.OriginalCol >= 0 }

// HasDistinctValue reports whether a separate CNY column was paired with
// the native amount column.
func (c SnapshotColumns) HasDistinctValue() bool {
	return c.OriginalCol >= 0 && c.ValueCol != c.OriginalCol
}

// Layout is the interpretation of a header row.
type Layout struct {
	CurrencyCol int
	Columns     []SnapshotColumns
}

// Labels returns snapshot labels in sheet order.
func (l Layout) Labels() []string {
	labels := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		labels[i] = c.Label
	}
	return labels
}

// ParseHeader interprets the header row in two passes: every cell is
// classified once, then value columns are paired with the nearest
// following CNY and change columns. Duplicate labels keep their first
// occurrence.
func ParseHeader(header []string) Layout {
	cells := classifyHeader(header)

	layout := Layout{CurrencyCol: -1}
	seen := make(map[string]bool)
	claimed := make(map[int]bool)

	for i, c := range cells {
		switch c.kind {
		case headerCurrency:
			if layout.CurrencyCol < 0 {
				layout.CurrencyCol = i
			}
		case headerOriginal:
			if seen[c.label] {
				continue
			}
			seen[c.label] = true
			col := SnapshotColumns{Label: c.label, OriginalCol: i, ValueCol: i}
			if j := pairedValueColumn(cells, i, c.label); j >= 0 {
				col.ValueCol = j
				claimed[j] = true
			}
			col.ChangeCol = changeColumn(cells, col.ValueCol)
			layout.Columns = append(layout.Columns, col)
		case headerValue:
			if claimed[i] || seen[c.label] {
				continue
			}
			seen[c.label] = true
			layout.Columns = append(layout.Columns, SnapshotColumns{
				Label:       c.label,
				OriginalCol: -1,
				ValueCol:    i,
				ChangeCol:   changeColumn(cells, i),
			})
		}
	}
	return layout
}

func classifyHeader(header []string) []headerCell {
	cells := make([]headerCell, len(header))
	for i, raw := range header {
		h := strings.TrimSpace(raw)
		switch {
		case h == "":
		case h == CurrencyHeader || strings.EqualFold(h, "currency"):
			cells[i] = headerCell{kind: headerCurrency}
		case originalPattern.MatchString(h):
			if label := originalPattern.FindStringSubmatch(h)[1]; ValidLabel(label) {
				cells[i] = headerCell{kind: headerOriginal, label: label}
			}
		case valuePattern.MatchString(h):
			if label := valuePattern.FindStringSubmatch(h)[1]; ValidLabel(label) {
				cells[i] = headerCell{kind: headerValue, label: label}
			}
		case strings.Contains(h, ChangeHeader):
			cells[i] = headerCell{kind: headerChange}
		}
	}
	return cells
}

// pairedValueColumn scans right of an original column for the same label's
// CNY column, stopping at the next original or change column.
func pairedValueColumn(cells []headerCell, from int, label string) int {
	for j := from + 1; j < len(cells); j++ {
		switch cells[j].kind {
		case headerOriginal, headerChange:
			return -1
		case headerValue:
			if cells[j].label == label {
				return j
			}
		}
	}
	return -1
}

// changeColumn finds the change column following from, before the next
// value header.
func changeColumn(cells []headerCell, from int) int {
	for j := from + 1; j < len(cells); j++ {
		switch cells[j].kind {
		case headerChange:
			return j
		case headerOriginal, headerValue:
			return -1
		}
	}
	return -1
}

// ValidLabel reports whether label is four digits naming a calendar day in
// some year. 0229 is valid.
func ValidLabel(label string) bool {
	_, _, err := splitLabel(label)
	return err == nil
}

func splitLabel(label string) (int, int, error) {
	if len(label) != 4 {
		return 0, 0, errInvalidLabel(label)
	}
	month, err := strconv.Atoi(label[0:2])
	if err != nil {
		return 0, 0, errInvalidLabel(label)
	}
	day, err := strconv.Atoi(label[2:4])
	if err != nil {
		return 0, 0, errInvalidLabel(label)
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month)) {
		return 0, 0, errInvalidLabel(label)
	}
	return month, day, nil
}

// daysIn is the longest a month can run, so February allows 29.
func daysIn(m time.Month) int {
	return time.Date(2000, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
