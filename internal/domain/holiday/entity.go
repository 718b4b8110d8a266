package holiday

import "time"

// Holiday is a single non-working calendar date.
type Holiday struct {
	ID        string
	Date      string // YYYY-MM-DD
	Name      string
	CreatedAt time.Time
}

// Merge combines the stored holiday list with the built-in fallback set.
// Stored entries win; fallback dates already present in the stored list are
// never duplicated.
func Merge(stored, defaults []Holiday) []Holiday {
	seen := make(map[string]bool, len(stored))
	merged := make([]Holiday, 0, len(stored)+len(defaults))
	for _, h := range stored {
		if h.Date == "" || seen[h.Date] {
			continue
		}
		seen[h.Date] = true
		merged = append(merged, h)
	}
	for _, h := range defaults {
		if h.Date == "" || seen[h.Date] {
			continue
		}
		seen[h.Date] = true
		merged = append(merged, h)
	}
	return merged
}
