package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/fixtures"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
)

// AttendanceService serves stored punch records and their per-day
// classification. All hour math goes through the shared timesheet package so
// listings and payroll always agree.
type AttendanceService struct {
	recordRepo     record.Repository
	holidayRepo    holiday.Repository
	adjustmentRepo adjustment.Repository
	policy         timesheet.Policy
	now            func() time.Time
}

func NewAttendanceService(
	recordRepo record.Repository,
	holidayRepo holiday.Repository,
	adjustmentRepo adjustment.Repository,
	policy timesheet.Policy,
) *AttendanceService {
	return &AttendanceService{
		recordRepo:     recordRepo,
		holidayRepo:    holidayRepo,
		adjustmentRepo: adjustmentRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// List returns an employee's records in the filter range, oldest first. An
// open start or end falls back to the widest canonical date bound.
func (s *AttendanceService) List(ctx context.Context, filter record.ListFilter) ([]record.Response, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start := filter.StartDate
	if start == "" {
		start = "0000-01-01"
	}
	end := filter.EndDate
	if end == "" {
		end = "9999-12-31"
	}

	records, err := s.recordRepo.ListByEmployeeAndRange(ctx, filter.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]record.Response, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses, nil
}

// MarkLeave flags or unflags a record as leave. Punch times are left as
// stored; leave affects classification only.
func (s *AttendanceService) MarkLeave(ctx context.Context, id string, req record.MarkLeaveRequest) (record.Response, error) {
	if err := req.Validate(); err != nil {
		return record.Response{}, err
	}

	leaveType := req.LeaveType
	if !req.IsLeave {
		leaveType = ""
	}

	rec, err := s.recordRepo.SetLeave(ctx, id, req.IsLeave, leaveType)
	if err != nil {
		return record.Response{}, err
	}
	return toResponse(rec), nil
}

// Daily returns the full calendar of classified days for one employee-month,
// absent and upcoming days included.
func (s *AttendanceService) Daily(ctx context.Context, employeeID, month string) ([]timesheet.DayResult, error) {
	in, err := s.monthInput(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	return timesheet.ClassifyMonth(in)
}

// monthInput assembles the classification input for one employee-month:
// records in range, merged holidays and the optional adjustment.
func (s *AttendanceService) monthInput(ctx context.Context, employeeID, month string) (timesheet.MonthInput, error) {
	start, days, err := timesheet.MonthBounds(month)
	if err != nil {
		return timesheet.MonthInput{}, err
	}
	startDate := timesheet.DateString(start)
	endDate := timesheet.DateString(start.AddDate(0, 0, days-1))

	records, err := s.recordRepo.ListByEmployeeAndRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return timesheet.MonthInput{}, fmt.Errorf("failed to list records: %w", err)
	}

	stored, err := s.holidayRepo.List(ctx)
	if err != nil {
		return timesheet.MonthInput{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	in := timesheet.MonthInput{
		EmployeeID: employeeID,
		Month:      month,
		Records:    records,
		Holidays:   holiday.Merge(stored, fixtures.DefaultHolidays()),
		Today:      s.now(),
		Policy:     s.policy,
	}

	adj, err := s.adjustmentRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
	switch {
	case err == nil:
		in.Adjustment = &adj
	case errors.Is(err, adjustment.ErrAdjustmentNotFound):
		// no adjustment recorded for this month
	default:
		return timesheet.MonthInput{}, fmt.Errorf("failed to load adjustment: %w", err)
	}

	return in, nil
}

func toResponse(rec record.Record) record.Response {
	daily := timesheet.ComputeDaily(rec.PunchTimes)
	return record.Response{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		Department:       rec.Department,
		Date:             rec.Date,
		PunchTimes:       rec.PunchTimes,
		InTime:           daily.InTime,
		OutTime:          daily.OutTime,
		TotalHours:       daily.Total,
		IsLeave:          rec.IsLeave,
		LeaveType:        rec.LeaveType,
		IsManualEntry:    rec.IsManualEntry,
		WeekendApproved:  rec.WeekendApproved,
		HighlightedTimes: rec.HighlightedTimes,
	}
}
