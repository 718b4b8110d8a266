package record

import (
	"regexp"
	"strings"
	"time"
)

// Leave types recognized on a punch record.
const (
	LeaveTypePaid   = "Paid"
	LeaveTypeUnpaid = "Unpaid"
)

// Record is one attendance document per (employee, calendar date).
type Record struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Department   string

	// Date is canonical YYYY-MM-DD. Always normalized before storage or
	// comparison; lexicographic order of these strings is chronological order.
	Date string

	// PunchTimes holds HH:MM entries in the order they were encountered.
	// The order encodes IN/OUT pairing and must never be re-sorted.
	PunchTimes []string

	IsLeave          bool
	LeaveType        string
	IsManualEntry    bool
	WeekendApproved  bool
	HighlightedTimes []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var idSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// DocumentID builds the deterministic record id for an employee and date.
// Re-uploading the same row always maps to the same id, which is what makes
// ingestion idempotent.
func DocumentID(employeeID, date string) string {
	emp := idSanitizer.ReplaceAllString(strings.TrimSpace(employeeID), "_")
	d := idSanitizer.ReplaceAllString(strings.TrimSpace(date), "_")
	return emp + "_" + d
}
