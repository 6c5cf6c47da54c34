package service

import "fmt"

// ValidationError reports malformed or out-of-range input. The caller must
// correct the request; it is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError covers both a missing row and a row owned by another user,
// so existence never leaks across tenants.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// PersistenceError wraps a store failure. The service does not retry; the
// caller decides whether the operation is worth repeating.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialWorkflowError reports that MarkPaidWithTransaction recorded the
// expense but did not update the reminder, leaving the two out of step.
// TransactionID identifies the record that may need reconciliation.
type PartialWorkflowError struct {
	TransactionID int64
	Err           error
}

func (e *PartialWorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("expense %d recorded but reminder update failed: %v", e.TransactionID, e.Err)
	}
	return fmt.Sprintf("expense %d recorded but reminder was already paid concurrently", e.TransactionID)
}

func (e *PartialWorkflowError) Unwrap() error { return e.Err }
