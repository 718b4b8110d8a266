package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDate parses a date written in any of the spreadsheet formats seen
// in the wild (YYYY-MM-DD, DD-MM-YYYY, MM/DD/YYYY, DD/MM/YYYY, YYYY/MM/DD)
// and returns the canonical YYYY-MM-DD form. The second result is false when
// the value cannot be read as a date; callers exclude such rows instead of
// failing the whole computation.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	// strip a time-of-day suffix if present
	if idx := strings.IndexAny(s, "T "); idx > 0 {
		s = s[:idx]
	}

	sep := ""
	switch {
	case strings.Contains(s, "-"):
		sep = "-"
	case strings.Contains(s, "/"):
		sep = "/"
	default:
		return "", false
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", false
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	c, errC := strconv.Atoi(parts[2])
	if errA != nil || errB != nil || errC != nil {
		return "", false
	}

	var year, month, day int
	switch {
	case len(parts[0]) == 4:
		// YYYY-MM-DD or YYYY/MM/DD
		year, month, day = a, b, c
	case len(parts[2]) == 4 && sep == "-":
		// DD-MM-YYYY
		year, month, day = c, b, a
	case len(parts[2]) == 4:
		// MM/DD/YYYY preferred; fall back to DD/MM/YYYY when the first
		// number cannot be a month
		if a >= 1 && a <= 12 && b >= 1 && b <= 31 {
			year, month, day = c, a, b
			if b > 12 || validDate(year, month, day) {
				break
			}
		}
		year, month, day = c, b, a
	default:
		return "", false
	}

	if !validDate(year, month, day) {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func validDate(year, month, day int) bool {
	if year < 1900 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// MonthBounds resolves a YYYY-MM month into its first day and day count.
func MonthBounds(month string) (start time.Time, days int, err error) {
	start, err = time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid month %q: %w", month, err)
	}
	days = start.AddDate(0, 1, -1).Day()
	return start, days, nil
}

// DateString formats t in the canonical date form.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}
