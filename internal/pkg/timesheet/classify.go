package timesheet

import (
	"time"

	"github.com/paylens/attendance-backend-go/internal/domain/record"
)

// Status is the single classification assigned to a calendar day.
type Status string

const (
	StatusWeekend  Status = "weekend"
	StatusHoliday  Status = "holiday"
	StatusLeave    Status = "leave"
	StatusFullDay  Status = "present"
	StatusHalfDay  Status = "half-day"
	StatusZeroDay  Status = "zero-hours"
	StatusAbsent   Status = "absent"
	StatusUpcoming Status = "upcoming"
)

// DayResult is the classified outcome for one calendar day.
type DayResult struct {
	Date         string  `json:"date"`
	Status       Status  `json:"status"`
	CreditedDays float64 `json:"credited_days"`
	DailyHours   float64 `json:"daily_hours"`
	InTime       string  `json:"in_time,omitempty"`
	OutTime      string  `json:"out_time,omitempty"`
	TotalHours   string  `json:"total_hours,omitempty"`
	IsWeekend    bool    `json:"is_weekend"`
	IsHoliday    bool    `json:"is_holiday"`
	HasRecord    bool    `json:"has_record"`
	LeaveType    string  `json:"leave_type,omitempty"`

	// Shortage is FullDayHours - DailyHours for half-credit days.
	Shortage float64 `json:"shortage,omitempty"`

	// ShortageGranted marks a day raised to full hours by a manual
	// adjustment.
	ShortageGranted bool `json:"shortage_granted,omitempty"`
}

// Overlay is the immutable per-day override map resolved from the month's
// manual adjustment before classification runs. Resolving it up front keeps
// ClassifyDay a pure function of (record, overlay); nothing is merged
// mid-loop.
type Overlay struct {
	ShortageGrants map[string]bool
}

// NewOverlay builds the override map from granted-shortage dates. Dates are
// normalized so the overlay matches canonical record dates.
func NewOverlay(grantedShortageDates []string) Overlay {
	grants := make(map[string]bool, len(grantedShortageDates))
	for _, d := range grantedShortageDates {
		if nd, ok := NormalizeDate(d); ok {
			grants[nd] = true
		}
	}
	return Overlay{ShortageGrants: grants}
}

// ClassifyDay assigns one status and a credited-day value to a calendar day.
// Precedence: weekend/holiday, then leave, then the hour thresholds for an
// ordinary weekday with a record, then absence. rec is nil for days without a
// punch record. holidays maps canonical dates to holiday names.
func ClassifyDay(date time.Time, rec *record.Record, holidays map[string]string, overlay Overlay, today time.Time, pol Policy) DayResult {
	dateStr := DateString(date)
	_, isHoliday := holidays[dateStr]
	isWeekend := pol.isWeekend(date.Weekday())

	dr := DayResult{
		Date:      dateStr,
		IsWeekend: isWeekend,
		IsHoliday: isHoliday,
		HasRecord: rec != nil,
	}

	var daily Daily
	if rec != nil {
		daily = ComputeDaily(rec.PunchTimes)
		dr.DailyHours = daily.Hours()
		dr.InTime = daily.InTime
		dr.OutTime = daily.OutTime
		dr.TotalHours = daily.Total
	}

	if isWeekend || isHoliday {
		// An unworked weekend/holiday is paid non-working time; a worked one
		// credits the same 1.0 for presence. Hour eligibility on weekends is
		// decided by the aggregator via the weekend approval flag.
		if isWeekend {
			dr.Status = StatusWeekend
		} else {
			dr.Status = StatusHoliday
		}
		dr.CreditedDays = 1.0
		return dr
	}

	if rec != nil && rec.IsLeave {
		dr.Status = StatusLeave
		dr.LeaveType = rec.LeaveType
		// Leave days are excluded from eligible hours entirely.
		dr.DailyHours = 0
		if rec.LeaveType == record.LeaveTypePaid {
			dr.CreditedDays = 1.0
		}
		return dr
	}

	if rec != nil {
		hours := dr.DailyHours
		if overlay.ShortageGrants[dateStr] && hours < pol.FullDayHours {
			hours = pol.FullDayHours
			dr.ShortageGranted = true
			dr.DailyHours = hours
		}
		switch {
		case hours >= pol.FullDayHours:
			dr.Status = StatusFullDay
			dr.CreditedDays = 1.0
		case hours >= pol.HalfDayMinHours:
			dr.Status = StatusHalfDay
			dr.CreditedDays = 0.5
			dr.Shortage = pol.FullDayHours - hours
		default:
			// Distinct from a true no-record day: the employee showed up but
			// worked too little for any credit.
			dr.Status = StatusZeroDay
		}
		return dr
	}

	if date.After(today) {
		dr.Status = StatusUpcoming
		return dr
	}

	dr.Status = StatusAbsent
	return dr
}
