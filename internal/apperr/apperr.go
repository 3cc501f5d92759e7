package apperr

import "errors"

// Sentinels for the failure taxonomy the handlers translate into
// structured responses. Services wrap these with context via %w.
var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks operations on assignments that do not
	// belong to the requesting student.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrExpired marks start/submit attempts past the assignment window.
	ErrExpired = errors.New("session expired")
	// ErrAlreadySubmitted marks a second submit on a completed assignment.
	ErrAlreadySubmitted = errors.New("already submitted")
	// ErrStateConflict marks transitions the lifecycle does not allow.
	ErrStateConflict = errors.New("state conflict")
)

// Stable reason codes carried in error responses.
const (
	CodeNotFound         = "not_found"
	CodeUnauthorized     = "unauthorized"
	CodeInvalidArgument  = "invalid_argument"
	CodeExpired          = "expired"
	CodeAlreadySubmitted = "already_submitted"
	CodeStateConflict    = "state_conflict"
	CodeInternal         = "internal"
)

// Code returns the stable reason code for a taxonomy error, or
// CodeInternal when the error is not one of the sentinels.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrExpired):
		return CodeExpired
	case errors.Is(err, ErrAlreadySubmitted):
		return CodeAlreadySubmitted
	case errors.Is(err, ErrStateConflict):
		return CodeStateConflict
	}
	return CodeInternal
}
