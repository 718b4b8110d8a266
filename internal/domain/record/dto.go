package record

import (
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE RECORD DTOs
// ========================================

type ListFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkLeaveRequest struct {
	IsLeave   bool   `json:"is_leave"`
	LeaveType string `json:"leave_type"`
}

func (r *MarkLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IsLeave && r.LeaveType != LeaveTypePaid && r.LeaveType != LeaveTypeUnpaid {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be Paid or Unpaid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name,omitempty"`
	Department       string   `json:"department,omitempty"`
	Date             string   `json:"date"`
	PunchTimes       []string `json:"punch_times"`
	InTime           string   `json:"in_time,omitempty"`
	OutTime          string   `json:"out_time,omitempty"`
	TotalHours       string   `json:"total_hours,omitempty"`
	IsLeave          bool     `json:"is_leave"`
	LeaveType        string   `json:"leave_type,omitempty"`
	IsManualEntry    bool     `json:"is_manual_entry"`
	WeekendApproved  bool     `json:"weekend_approved"`
	HighlightedTimes []string `json:"highlighted_times,omitempty"`
}
