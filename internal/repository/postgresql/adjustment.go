package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.Repository {
	return &adjustmentRepository{db: db}
}

// GetByEmployeeAndMonth implements adjustment.Repository.
func (r *adjustmentRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, granted_leaves, granted_hours,
			   granted_shortage_dates, incentive_amount, created_at, updated_at
		FROM adjustments
		WHERE employee_id = $1
		  AND month = $2
	`

	var adj adjustment.Adjustment
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&adj.ID, &adj.EmployeeID, &adj.Month, &adj.GrantedLeaves, &adj.GrantedHours,
		&adj.GrantedShortageDates, &adj.IncentiveAmount, &adj.CreatedAt, &adj.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return adjustment.Adjustment{}, adjustment.ErrAdjustmentNotFound
		}
		return adjustment.Adjustment{}, fmt.Errorf("failed to get adjustment: %w", err)
	}

	return adj, nil
}

// Upsert implements adjustment.Repository.
func (r *adjustmentRepository) Upsert(ctx context.Context, adj adjustment.Adjustment) (adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adjustments (
			id, employee_id, month, granted_leaves, granted_hours,
			granted_shortage_dates, incentive_amount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (id) DO UPDATE SET
			granted_leaves = EXCLUDED.granted_leaves,
			granted_hours = EXCLUDED.granted_hours,
			granted_shortage_dates = EXCLUDED.granted_shortage_dates,
			incentive_amount = EXCLUDED.incentive_amount,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		adj.ID,
		adj.EmployeeID,
		adj.Month,
		adj.GrantedLeaves,
		adj.GrantedHours,
		adj.GrantedShortageDates,
		adj.IncentiveAmount,
	).Scan(&adj.CreatedAt, &adj.UpdatedAt)

	if err != nil {
		return adjustment.Adjustment{}, fmt.Errorf("failed to upsert adjustment: %w", err)
	}

	return adj, nil
}
