package adjustment

import (
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertRequest struct {
	GrantedLeaves        float64          `json:"granted_leaves"`
	GrantedHours         float64          `json:"granted_hours"`
	GrantedShortageDates []string         `json:"granted_shortage_dates"`
	IncentiveAmount      *decimal.Decimal `json:"incentive_amount,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GrantedLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "granted_leaves",
			Message: "granted_leaves must not be negative",
		})
	}
	if r.GrantedHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "granted_hours",
			Message: "granted_hours must not be negative",
		})
	}
	for _, d := range r.GrantedShortageDates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "granted_shortage_dates",
				Message: "dates must be YYYY-MM-DD",
			})
			break
		}
	}
	if r.IncentiveAmount != nil && r.IncentiveAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "incentive_amount",
			Message: "incentive_amount must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	Month                string          `json:"month"`
	GrantedLeaves        float64         `json:"granted_leaves"`
	GrantedHours         float64         `json:"granted_hours"`
	GrantedShortageDates []string        `json:"granted_shortage_dates"`
	IncentiveAmount      decimal.Decimal `json:"incentive_amount"`
}
