package ledger

import (
	"errors"
	"fmt"
)

// ValidationError names the missing or malformed field so the UI can point at
// it. No record is persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}

// ErrForbidden is returned when the acting role may not record the requested
// transaction type.
var ErrForbidden = errors.New("role not permitted for this transaction type")

var ErrNotFound = errors.New("transaction not found")
