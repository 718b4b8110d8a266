package record

import "context"

// Repository defines data access for punch records. Records are keyed by the
// deterministic DocumentID, so Upsert is the only write path ingestion needs.
type Repository interface {
	// Upsert writes a record by its deterministic id. Returns true when a new
	// row was created, false when an existing one was overwritten.
	Upsert(ctx context.Context, rec Record) (created bool, err error)

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, id string) (Record, error)

	// ListByEmployeeAndRange returns records for an employee with
	// startDate <= date <= endDate (canonical date strings), ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID, startDate, endDate string) ([]Record, error)

	// DeleteStaleInRange removes the employee's records inside the span whose
	// ids are not in keep, atomically, and reports how many were deleted. Used
	// by the ingestion cleanup pass: keep is the just-written id set.
	DeleteStaleInRange(ctx context.Context, employeeID, startDate, endDate string, keep []string) (int64, error)

	// SetLeave toggles the leave flag on an existing record. This is the
	// mutation surface used by the external approval workflow.
	SetLeave(ctx context.Context, id string, isLeave bool, leaveType string) (Record, error)
}
