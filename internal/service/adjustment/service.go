package adjustment

import (
	"context"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AdjustmentService manages manual per-employee-month overrides.
type AdjustmentService struct {
	adjustmentRepo adjustment.Repository
}

func NewAdjustmentService(adjustmentRepo adjustment.Repository) *AdjustmentService {
	return &AdjustmentService{adjustmentRepo: adjustmentRepo}
}

// Get returns the stored adjustment for an employee-month. Returns
// ErrAdjustmentNotFound when none was recorded.
func (s *AdjustmentService) Get(ctx context.Context, employeeID, month string) (adjustment.Response, error) {
	if err := validateKey(employeeID, month); err != nil {
		return adjustment.Response{}, err
	}

	adj, err := s.adjustmentRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		return adjustment.Response{}, err
	}
	return toResponse(adj), nil
}

// Upsert writes the full adjustment for an employee-month, replacing any
// previous one. Shortage dates are normalized before storage.
func (s *AdjustmentService) Upsert(ctx context.Context, employeeID, month string, req adjustment.UpsertRequest) (adjustment.Response, error) {
	if err := validateKey(employeeID, month); err != nil {
		return adjustment.Response{}, err
	}
	if err := req.Validate(); err != nil {
		return adjustment.Response{}, err
	}

	dates := make([]string, 0, len(req.GrantedShortageDates))
	for _, d := range req.GrantedShortageDates {
		if nd, ok := timesheet.NormalizeDate(d); ok {
			dates = append(dates, nd)
		}
	}

	incentive := decimal.Zero
	if req.IncentiveAmount != nil {
		incentive = *req.IncentiveAmount
	}

	adj := adjustment.Adjustment{
		EmployeeID:           employeeID,
		Month:                month,
		GrantedLeaves:        req.GrantedLeaves,
		GrantedHours:         req.GrantedHours,
		GrantedShortageDates: dates,
		IncentiveAmount:      incentive,
	}
	adj.ID = adj.Key()

	stored, err := s.adjustmentRepo.Upsert(ctx, adj)
	if err != nil {
		return adjustment.Response{}, err
	}
	return toResponse(stored), nil
}

func validateKey(employeeID, month string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be YYYY-MM",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toResponse(adj adjustment.Adjustment) adjustment.Response {
	dates := adj.GrantedShortageDates
	if dates == nil {
		dates = []string{}
	}
	return adjustment.Response{
		ID:                   adj.ID,
		EmployeeID:           adj.EmployeeID,
		Month:                adj.Month,
		GrantedLeaves:        adj.GrantedLeaves,
		GrantedHours:         adj.GrantedHours,
		GrantedShortageDates: dates,
		IncentiveAmount:      adj.IncentiveAmount,
	}
}
