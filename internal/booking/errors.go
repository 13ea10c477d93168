// Package booking implements the reservation validation rules and the
// error kinds the service surfaces to its transport layer.  Handlers
// translate kinds to HTTP status codes; nothing in this package knows
// about HTTP.
package booking

import "errors"

// Kind classifies a booking error so callers can branch on it without
// parsing messages.
type Kind string

const (
	// KindMissingField marks a payload that lacks a required field.
	KindMissingField Kind = "missing_field"
	// KindValidation marks a field that is present but semantically invalid.
	KindValidation Kind = "validation"
	// KindNotFound marks a reservation or table identifier that does not resolve.
	KindNotFound Kind = "not_found"
	// KindConflict marks an operation rejected because of current entity
	// state, such as seating at an occupied table.
	KindConflict Kind = "conflict"
)

// Error is the failure type returned by the rules engine and the seating
// coordinator.  Field is set for field-level failures and empty otherwise.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// MissingField returns a KindMissingField error naming the absent field.
func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: "data must have " + field + " property"}
}

// Invalid returns a KindValidation error for a present but invalid field.
func Invalid(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound returns a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the Kind from err, or "" when err is not a booking error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
