package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every request validation failure.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
