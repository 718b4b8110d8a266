package adjustment

import "context"

type Repository interface {
	// GetByEmployeeAndMonth is a point read by the employeeID_YYYY-MM key.
	// Returns ErrAdjustmentNotFound when no adjustment was recorded.
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (Adjustment, error)

	// Upsert writes the adjustment for its employee-month key.
	Upsert(ctx context.Context, adj Adjustment) (Adjustment, error)
}
