package scheduling

import (
	"fmt"
	"strings"
)

// Kind classifies a business outcome. Expected failures are returned as
// values inside BookingResult, never thrown as control flow.
type Kind string

const (
	KindValidation  Kind = "validation"  // request violates a declared constraint
	KindUnavailable Kind = "unavailable" // no qualified/free staff at the requested time
	KindConflict    Kind = "conflict"    // a race claimed the slot between assignment and commit
	KindNotFound    Kind = "not_found"   // booking/service/staff id does not resolve
	KindState       Kind = "state"       // illegal state-machine transition
)

// Error is a structured business-outcome failure. It always carries a
// clear reason; validation failures additionally itemize each violation.
type Error struct {
	Kind       Kind     `json:"kind"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func validationError(violations ...string) *Error {
	return &Error{Kind: KindValidation, Message: "booking request failed validation", Violations: violations}
}

func unavailableError(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

func conflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func notFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

func stateError(message string) *Error {
	return &Error{Kind: KindState, Message: message}
}
