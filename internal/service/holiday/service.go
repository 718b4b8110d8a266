package holiday

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/fixtures"
)

// HolidayService manages the stored holiday calendar layered over the
// built-in fallback set.
type HolidayService struct {
	holidayRepo holiday.Repository
}

func NewHolidayService(holidayRepo holiday.Repository) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo}
}

// List returns the merged calendar ordered by date. Built-in entries are
// flagged so clients know they cannot be deleted.
func (s *HolidayService) List(ctx context.Context) ([]holiday.Response, error) {
	stored, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	merged := holiday.Merge(stored, fixtures.DefaultHolidays())
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })

	responses := make([]holiday.Response, 0, len(merged))
	for _, h := range merged {
		responses = append(responses, holiday.Response{
			ID:      h.ID,
			Date:    h.Date,
			Name:    h.Name,
			BuiltIn: strings.HasPrefix(h.ID, "builtin_"),
		})
	}
	return responses, nil
}

// Create stores a new holiday. A stored holiday on a built-in date shadows
// the built-in entry on merge.
func (s *HolidayService) Create(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		ID:   uuid.NewString(),
		Date: req.Date,
		Name: req.Name,
	})
	if err != nil {
		return holiday.Response{}, err
	}

	return holiday.Response{ID: created.ID, Date: created.Date, Name: created.Name}, nil
}

// Delete removes a stored holiday. Built-in entries are not stored rows and
// cannot be deleted.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if strings.HasPrefix(id, "builtin_") {
		return holiday.ErrHolidayNotFound
	}
	return s.holidayRepo.Delete(ctx, id)
}
