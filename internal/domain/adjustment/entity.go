package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment holds manual, human-approved overrides for one employee-month.
// Keyed by employeeID + month (YYYY-MM).
type Adjustment struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM

	// GrantedLeaves adds paid-leave day credit on top of leave-flagged records.
	GrantedLeaves float64

	// GrantedHours adds to the month's eligible hours.
	GrantedHours float64

	// GrantedShortageDates lists dates whose short day is treated as a full
	// 8-hour day for classification. Applies to that day's classification
	// only; stored punch data is never rewritten.
	GrantedShortageDates []string

	IncentiveAmount decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the employeeID_YYYY-MM lookup key.
func (a Adjustment) Key() string {
	return a.EmployeeID + "_" + a.Month
}
