package timesheet

import "fmt"

// Daily is the reduction of one day's punch sequence.
type Daily struct {
	InTime  string `json:"in_time"`
	OutTime string `json:"out_time"`
	Minutes int    `json:"minutes"`
	Total   string `json:"total"` // H:MM
}

// Hours returns the worked time as fractional hours.
func (d Daily) Hours() float64 {
	return float64(d.Minutes) / 60.0
}

// ComputeDaily reduces a punch-time sequence to paired IN/OUT intervals and
// sums the worked minutes. Entries not matching the HH:MM shape are dropped;
// fewer than 2 valid entries yields an all-empty result. The list is walked
// two at a time (0&1, 2&3, ...), each pair one IN->OUT interval. A pair whose
// duration is not positive contributes zero minutes, which absorbs
// mis-punches instead of producing negative time.
//
// This paired-interval rule is the canonical daily-hours formula; a
// last-minus-first computation is NOT equivalent and must not be used.
func ComputeDaily(times []string) Daily {
	valid := make([]string, 0, len(times))
	for _, t := range times {
		if clockToMinutes(t) >= 0 {
			valid = append(valid, t)
		}
	}
	if len(valid) < 2 {
		return Daily{Total: formatMinutes(0)}
	}

	total := 0
	for i := 0; i+1 < len(valid); i += 2 {
		in := clockToMinutes(valid[i])
		out := clockToMinutes(valid[i+1])
		if out > in {
			total += out - in
		}
	}

	return Daily{
		InTime:  valid[0],
		OutTime: valid[len(valid)-1],
		Minutes: total,
		Total:   formatMinutes(total),
	}
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
