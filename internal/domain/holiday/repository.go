package holiday

import "context"

type Repository interface {
	// List returns the full stored holiday list ordered by date.
	List(ctx context.Context) ([]Holiday, error)

	// Create stores a new holiday. Returns ErrHolidayExists when the date is
	// already taken.
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// Delete removes a holiday by id.
	Delete(ctx context.Context, id string) error
}
