package fixtures

import "github.com/paylens/attendance-backend-go/internal/domain/holiday"

// defaultHolidayDates is the built-in national holiday fallback, used when a
// date has no stored holiday. Stored entries always win on merge.
var defaultHolidayDates = []struct {
	date string
	name string
}{
	{"2024-01-01", "New Year's Day"},
	{"2024-01-26", "Republic Day"},
	{"2024-03-25", "Holi"},
	{"2024-08-15", "Independence Day"},
	{"2024-10-02", "Gandhi Jayanti"},
	{"2024-10-31", "Diwali"},
	{"2024-12-25", "Christmas"},

	{"2025-01-01", "New Year's Day"},
	{"2025-01-26", "Republic Day"},
	{"2025-03-14", "Holi"},
	{"2025-08-15", "Independence Day"},
	{"2025-10-02", "Gandhi Jayanti"},
	{"2025-10-20", "Diwali"},
	{"2025-12-25", "Christmas"},

	{"2026-01-01", "New Year's Day"},
	{"2026-01-26", "Republic Day"},
	{"2026-03-04", "Holi"},
	{"2026-08-15", "Independence Day"},
	{"2026-10-02", "Gandhi Jayanti"},
	{"2026-11-08", "Diwali"},
	{"2026-12-25", "Christmas"},
}

// DefaultHolidays returns the built-in holiday set. Ids carry a builtin_
// prefix so handlers can tell them apart from stored rows.
func DefaultHolidays() []holiday.Holiday {
	out := make([]holiday.Holiday, 0, len(defaultHolidayDates))
	for _, d := range defaultHolidayDates {
		out = append(out, holiday.Holiday{
			ID:   "builtin_" + d.date,
			Date: d.date,
			Name: d.name,
		})
	}
	return out
}
