package response

import (
	"errors"
	"net/http"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Record domain errors
	case errors.Is(err, record.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Adjustment domain errors
	case errors.Is(err, adjustment.ErrAdjustmentNotFound):
		NotFound(w, "Adjustment not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
