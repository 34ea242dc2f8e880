package appointment

import "fmt"

// ValidationError reports malformed booking input. It is terminal:
// the caller must fix the request, never retry it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports that the requested slot was taken between the
// availability read and the reservation. The caller should re-fetch
// availability and pick another slot.
type ConflictError struct {
	Date string
	Time string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is no longer available", e.Date, e.Time)
}

// InvalidTransitionError reports a lifecycle action not permitted from
// the appointment's current status.
type InvalidTransitionError struct {
	From   string
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an appointment in status %q", e.Action, e.From)
}

// NotFoundError reports that the referenced appointment does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("appointment %s not found", e.ID)
}

// InfrastructureError wraps a transient store failure that survived the
// engine's internal retries. Callers may retry the whole operation.
type InfrastructureError struct {
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }
