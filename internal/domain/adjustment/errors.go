package adjustment

import "errors"

var (
	ErrAdjustmentNotFound = errors.New("adjustment not found")
)
