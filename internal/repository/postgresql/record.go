package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) record.Repository {
	return &recordRepository{db: db}
}

const recordColumns = `id, employee_id, employee_name, department, date, punch_times,
	   is_leave, leave_type, is_manual_entry, weekend_approved, highlighted_times,
	   created_at, updated_at`

// Upsert implements record.Repository.
func (r *recordRepository) Upsert(ctx context.Context, rec record.Record) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_records (
			id, employee_id, employee_name, department, date, punch_times,
			is_leave, leave_type, is_manual_entry, weekend_approved, highlighted_times
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			department = EXCLUDED.department,
			punch_times = EXCLUDED.punch_times,
			is_manual_entry = EXCLUDED.is_manual_entry,
			highlighted_times = EXCLUDED.highlighted_times,
			updated_at = NOW()
		RETURNING (created_at = updated_at)
	`

	var created bool
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.EmployeeName,
		rec.Department,
		rec.Date,
		rec.PunchTimes,
		rec.IsLeave,
		rec.LeaveType,
		rec.IsManualEntry,
		rec.WeekendApproved,
		rec.HighlightedTimes,
	).Scan(&created)

	if err != nil {
		return false, fmt.Errorf("failed to upsert punch record: %w", err)
	}

	return created, nil
}

// GetByID implements record.Repository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM punch_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return record.Record{}, record.ErrRecordNotFound
		}
		return record.Record{}, fmt.Errorf("failed to get punch record: %w", err)
	}

	return rec, nil
}

// ListByEmployeeAndRange implements record.Repository.
func (r *recordRepository) ListByEmployeeAndRange(ctx context.Context, employeeID, startDate, endDate string) ([]record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM punch_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch records: %w", err)
	}

	return records, nil
}

// DeleteStaleInRange implements record.Repository. The scan and the delete
// run in one transaction so a concurrent import cannot slip a record in
// between them.
func (r *recordRepository) DeleteStaleInRange(ctx context.Context, employeeID, startDate, endDate string, keep []string) (int64, error) {
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}

	var deleted int64
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			SELECT id
			FROM punch_records
			WHERE employee_id = $1
			  AND date >= $2
			  AND date <= $3
			ORDER BY date
		`

		rows, err := q.Query(txCtx, query, employeeID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to list punch record ids: %w", err)
		}
		defer rows.Close()

		var stale []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("failed to scan punch record id: %w", err)
			}
			if !keepSet[id] {
				stale = append(stale, id)
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read punch record ids: %w", err)
		}
		rows.Close()

		if len(stale) == 0 {
			return nil
		}

		tag, err := q.Exec(txCtx, `DELETE FROM punch_records WHERE id = ANY($1)`, stale)
		if err != nil {
			return fmt.Errorf("failed to delete punch records: %w", err)
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// SetLeave implements record.Repository.
func (r *recordRepository) SetLeave(ctx context.Context, id string, isLeave bool, leaveType string) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punch_records
		SET is_leave = $2, leave_type = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, id, isLeave, leaveType))
	if err != nil {
		if err == pgx.ErrNoRows {
			return record.Record{}, record.ErrRecordNotFound
		}
		return record.Record{}, fmt.Errorf("failed to set leave: %w", err)
	}

	return rec, nil
}

func scanRecord(row pgx.Row) (record.Record, error) {
	var rec record.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Department, &rec.Date, &rec.PunchTimes,
		&rec.IsLeave, &rec.LeaveType, &rec.IsManualEntry, &rec.WeekendApproved, &rec.HighlightedTimes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
