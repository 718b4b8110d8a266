package timesheet

import "time"

// Policy carries the payroll constants that used to be hard-coded at every
// call site. The zero value is not usable; start from DefaultPolicy and
// override from configuration.
type Policy struct {
	// FullDayHours is the daily hour target; reaching it earns full credit.
	FullDayHours float64

	// HalfDayMinHours is the minimum for half credit; below it a day with a
	// record counts as a zero-hours day.
	HalfDayMinHours float64

	// WeekendDays marks the non-working days of the week.
	WeekendDays map[time.Weekday]bool
}

func DefaultPolicy() Policy {
	return Policy{
		FullDayHours:    8,
		HalfDayMinHours: 3,
		WeekendDays: map[time.Weekday]bool{
			time.Saturday: true,
			time.Sunday:   true,
		},
	}
}

func (p Policy) isWeekend(d time.Weekday) bool {
	return p.WeekendDays[d]
}
