package record

import "errors"

// Record domain errors
var (
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrMissingEmployee = errors.New("row has no employee id")
	ErrMissingDate     = errors.New("row has no date")
	ErrInvalidDate     = errors.New("row date could not be parsed")
)
