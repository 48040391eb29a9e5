package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the referenced
// entity does not exist in the registry.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrNotAuthorized is returned when the calling principal lacks the role an
// operation requires (admin, or planner with the authorized flag set).
// Handlers should map this to HTTP 403.
var ErrNotAuthorized = errors.New("not authorized")

// ErrInvalidRange is returned when a date or time-of-day interval is not
// strictly ordered (e.g. effective date on or after expiry date).
// Handlers should map this to HTTP 422.
var ErrInvalidRange = errors.New("invalid range")

// ErrInvalidState is returned when an operation is attempted against an
// entity whose current lifecycle state forbids it (e.g. activating a
// schedule version that was never approved).
// Handlers should map this to HTTP 409 Conflict.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidArgument is returned for a malformed enum value or an
// out-of-bounds numeric field.
// Handlers should map this to HTTP 422.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrValidation is returned for input that fails a business rule not covered
// by the more specific kinds above (e.g. missing required field).
// Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")
