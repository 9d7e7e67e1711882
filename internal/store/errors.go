package store

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the targeted record id is not in the store.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a rejected mutation. No state changes when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
