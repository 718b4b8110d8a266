package timesheet

import (
	"time"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/shopspring/decimal"
)

// MonthInput carries everything ComputeMonth needs. Holidays must already be
// the merged stored+default set; Adjustment may be nil.
type MonthInput struct {
	EmployeeID    string
	Month         string // YYYY-MM
	Records       []record.Record
	Holidays      []holiday.Holiday
	Adjustment    *adjustment.Adjustment
	Today         time.Time
	MonthlySalary decimal.Decimal
	JoinDate      string // optional YYYY-MM-DD; working days start here
	Policy        Policy
}

// ShortDay is a half-credit day and its missing hours.
type ShortDay struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Shortage float64 `json:"shortage"`
}

// MonthlyResult is the derived payroll summary for one employee-month. It is
// recomputed per request and never persisted.
type MonthlyResult struct {
	EmployeeID  string `json:"employee_id"`
	Month       string `json:"month"`
	DaysInMonth int    `json:"days_in_month"`

	WorkingDays int     `json:"working_days"`
	TargetHours float64 `json:"target_hours"`

	ActualHours   float64 `json:"actual_hours"`
	EligibleHours float64 `json:"eligible_hours"`

	PassedWorkingDays   int     `json:"passed_working_days"`
	PassedTargetHours   float64 `json:"passed_target_hours"`
	PassedEligibleHours float64 `json:"passed_eligible_hours"`

	EarnedDays   float64 `json:"earned_days"`
	PresentDays  int     `json:"present_days"`
	AttendedDays int     `json:"attended_days"`

	MissingDays  []string   `json:"missing_days"`
	ShortDays    []ShortDay `json:"short_days"`
	ZeroDays     []string   `json:"zero_days"`
	SandwichDays []string   `json:"sandwich_days"`

	UnworkedWeekends  int     `json:"unworked_weekends"`
	UnworkedHolidays  int     `json:"unworked_holidays"`
	PaidLeaves        float64 `json:"paid_leaves"`
	UnpaidLeaves      float64 `json:"unpaid_leaves"`
	SandwichDeduction int     `json:"sandwich_deduction"`

	NetEarningDays float64         `json:"net_earning_days"`
	PayableSalary  decimal.Decimal `json:"payable_salary"`
	Incentive      decimal.Decimal `json:"incentive"`
}

// HolidayDates turns a merged holiday list into a date->name lookup.
func HolidayDates(holidays []holiday.Holiday) map[string]string {
	set := make(map[string]string, len(holidays))
	for _, h := range holidays {
		if nd, ok := NormalizeDate(h.Date); ok {
			set[nd] = h.Name
		}
	}
	return set
}

// monthRecords filters records to the target month with tolerant date
// parsing and deduplicates by date. Malformed dates are excluded, never
// fatal. When two records share a date, a leave-flagged one wins over a
// non-leave one; otherwise the first stays.
func monthRecords(records []record.Record, month string) map[string]record.Record {
	prefix := month + "-"
	byDate := make(map[string]record.Record)
	for _, rec := range records {
		nd, ok := NormalizeDate(rec.Date)
		if !ok || len(nd) < len(prefix) || nd[:len(prefix)] != prefix {
			continue
		}
		rec.Date = nd
		existing, dup := byDate[nd]
		if dup && !(rec.IsLeave && !existing.IsLeave) {
			continue
		}
		byDate[nd] = rec
	}
	return byDate
}

// ClassifyMonth classifies every calendar day of the month, synthesizing
// absent days for dates without a record.
func ClassifyMonth(in MonthInput) ([]DayResult, error) {
	start, days, err := MonthBounds(in.Month)
	if err != nil {
		return nil, err
	}

	byDate := monthRecords(in.Records, in.Month)
	holidaySet := HolidayDates(in.Holidays)
	overlay := Overlay{ShortageGrants: map[string]bool{}}
	if in.Adjustment != nil {
		overlay = NewOverlay(in.Adjustment.GrantedShortageDates)
	}

	results := make([]DayResult, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		var rec *record.Record
		if r, ok := byDate[DateString(day)]; ok {
			rec = &r
		}
		results = append(results, ClassifyDay(day, rec, holidaySet, overlay, in.Today, in.Policy))
	}
	return results, nil
}

// ComputeMonth iterates all calendar days of the target month, merges the
// classifier output with the sandwich-leave policy and manual adjustments,
// and produces the monthly payroll summary.
func ComputeMonth(in MonthInput) (MonthlyResult, error) {
	start, daysInMonth, err := MonthBounds(in.Month)
	if err != nil {
		return MonthlyResult{}, err
	}

	dayResults, err := ClassifyMonth(in)
	if err != nil {
		return MonthlyResult{}, err
	}

	byDate := monthRecords(in.Records, in.Month)
	todayStr := DateString(in.Today)

	joinStart := ""
	if in.JoinDate != "" {
		if nd, ok := NormalizeDate(in.JoinDate); ok {
			joinStart = nd
		}
	}

	res := MonthlyResult{
		EmployeeID:   in.EmployeeID,
		Month:        in.Month,
		DaysInMonth:  daysInMonth,
		MissingDays:  []string{},
		ShortDays:    []ShortDay{},
		ZeroDays:     []string{},
		SandwichDays: []string{},
	}

	var weekdayEarned float64
	var workedOffDays float64 // worked weekends/holidays, credited for presence
	var paidLeaveCount, unpaidLeaveCount float64
	missingSet := make(map[string]bool)

	for _, dr := range dayResults {
		if joinStart != "" && dr.Date < joinStart {
			continue
		}
		passed := dr.Date <= todayStr

		rec, hasRec := byDate[dr.Date]

		// working-day target: weekdays that are not holidays
		if !dr.IsWeekend && !dr.IsHoliday {
			res.WorkingDays++
			if passed {
				res.PassedWorkingDays++
			}
		}

		res.ActualHours += dr.DailyHours

		// eligible hours: unapproved weekend work never counts
		eligible := dr.DailyHours
		if dr.IsWeekend && hasRec && !rec.WeekendApproved {
			eligible = 0
		}
		res.EligibleHours += eligible
		if passed {
			res.PassedEligibleHours += eligible
		}

		if dr.DailyHours > 0 {
			res.AttendedDays++
		}
		if dr.IsWeekend || dr.IsHoliday || dr.DailyHours >= in.Policy.HalfDayMinHours {
			res.PresentDays++
		}

		switch dr.Status {
		case StatusWeekend, StatusHoliday:
			if dr.DailyHours > 0 {
				workedOffDays += dr.CreditedDays
			} else if dr.Status == StatusWeekend {
				res.UnworkedWeekends++
			} else {
				res.UnworkedHolidays++
			}
		case StatusLeave:
			if dr.LeaveType == record.LeaveTypePaid {
				paidLeaveCount++
			} else {
				unpaidLeaveCount++
			}
		case StatusFullDay:
			weekdayEarned += dr.CreditedDays
		case StatusHalfDay:
			weekdayEarned += dr.CreditedDays
			res.ShortDays = append(res.ShortDays, ShortDay{
				Date:     dr.Date,
				Hours:    dr.DailyHours,
				Shortage: dr.Shortage,
			})
		case StatusZeroDay:
			res.ZeroDays = append(res.ZeroDays, dr.Date)
		case StatusAbsent:
			res.MissingDays = append(res.MissingDays, dr.Date)
			missingSet[dr.Date] = true
		}
	}

	res.TargetHours = float64(res.WorkingDays) * in.Policy.FullDayHours
	res.PassedTargetHours = float64(res.PassedWorkingDays) * in.Policy.FullDayHours

	incentive := decimal.Zero
	if in.Adjustment != nil {
		res.EligibleHours += in.Adjustment.GrantedHours
		res.PassedEligibleHours += in.Adjustment.GrantedHours
		paidLeaveCount += in.Adjustment.GrantedLeaves
		incentive = in.Adjustment.IncentiveAmount
	}
	res.PaidLeaves = paidLeaveCount
	res.UnpaidLeaves = unpaidLeaveCount

	// Sandwich rule: a weekend flanked by an absent Friday and an absent
	// Monday is not paid.
	for i := 0; i < daysInMonth; i++ {
		day := start.AddDate(0, 0, i)
		if day.Weekday() != time.Saturday {
			continue
		}
		friday := DateString(day.AddDate(0, 0, -1))
		monday := DateString(day.AddDate(0, 0, 2))
		if !missingSet[friday] || !missingSet[monday] {
			continue
		}
		res.SandwichDays = append(res.SandwichDays, DateString(day))
		res.SandwichDeduction++
		if sunday := day.AddDate(0, 0, 1); sunday.Month() == day.Month() {
			res.SandwichDays = append(res.SandwichDays, DateString(sunday))
			res.SandwichDeduction++
		}
	}

	// Hours-based fallback: many short days can still sum to full-time
	// hours; when eligible hours meet the target, raise the discrete
	// weekday credit to the working-day count.
	effectiveEarned := weekdayEarned
	if res.EligibleHours >= res.TargetHours && effectiveEarned < float64(res.WorkingDays) {
		effectiveEarned = float64(res.WorkingDays)
	}

	// Overtime cap: earned credit can never exceed the present-days count.
	// Applied after the fallback, so the cap wins.
	earned := effectiveEarned + workedOffDays
	if earned > float64(res.PresentDays) {
		earned = float64(res.PresentDays)
	}
	res.EarnedDays = earned

	presenceCredit := earned + float64(res.UnworkedWeekends) + float64(res.UnworkedHolidays)
	if presenceCredit > float64(res.PresentDays) {
		presenceCredit = float64(res.PresentDays)
	}

	net := presenceCredit - float64(res.SandwichDeduction) + paidLeaveCount

	// Zero-attendance guard: no presence at all and no paid leave means
	// nothing is payable, whatever the other terms add up to.
	if res.AttendedDays == 0 && paidLeaveCount == 0 {
		net = 0
	}

	if net < 0 {
		net = 0
	}
	if net > float64(daysInMonth) {
		net = float64(daysInMonth)
	}
	res.NetEarningDays = net

	dailyRate := in.MonthlySalary.Div(decimal.NewFromInt(int64(daysInMonth)))
	payable := dailyRate.Mul(decimal.NewFromFloat(net)).Add(incentive).Round(2)
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	res.PayableSalary = payable
	res.Incentive = incentive

	return res, nil
}
