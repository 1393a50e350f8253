package services

import "errors"

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("requested resource not found")
	ErrForbidden    = errors.New("operation not allowed for the current user")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("authentication failed")
)

// Error is a service failure with a message meant for the API client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func notFoundError(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func forbiddenError(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

func conflictError(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func unauthorizedError(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

var (
	errMissingFields    = validationError("Missing required fields")
	errUserNotFound     = notFoundError("User not found")
	errTeamNotFound     = notFoundError("Team not found")
	errTournamentAbsent = notFoundError("Tournament not found")
	errInvalidBase64    = validationError("Invalid base64 image data")
)
