package spreadsheet

import (
	"fmt"
	"time"
)

func errInvalidLabel(label string) error {
	return fmt.Errorf("invalid snapshot label %q: want MMDD", label)
}

// ResolveSnapshotDate turns an MMDD label into a date using the import-time
// clock. Labels near the year boundary are pulled into the adjacent year:
// November/December labels seen in January–March belong to last year, and
// January–March labels seen in November/December belong to next year.
//
// 0229 in a non-leap year rolls over to March 1st.
//
// The year is never stored in the label, so data older than a year cannot
// be placed correctly.
func ResolveSnapshotDate(label string, now time.Time) (time.Time, error) {
	month, day, err := splitLabel(label)
	if err != nil {
		return time.Time{}, err
	}

	year := now.Year()
	currentMonth := int(now.Month())
	switch {
	case month >= 11 && currentMonth <= 3:
		year--
	case month <= 3 && currentMonth >= 11:
		year++
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
