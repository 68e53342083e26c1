package report

import "fmt"

// ValidationError marks a scan record that cannot produce a report. The job
// fails without an artifact and is not retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scan record: field %q %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
