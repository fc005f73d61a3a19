package social

import (
	"errors"
	"fmt"

	"hive-social-network/database"
	"hive-social-network/validation"
)

// Error kinds. Every error returned by the engine matches exactly one of
// these with errors.Is, or none when it is an internal failure.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error carries the message shown to the client and the kind it belongs to.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// Conflict sentinels. Concrete errors use them as their Kind so callers can
// match either the sentinel or ErrConflict.
var (
	ErrDuplicateRequest = &Error{Kind: ErrConflict, Message: "Request already sent"}
	ErrAlreadyMember    = &Error{Kind: ErrConflict, Message: "Already a member"}
	ErrAlreadyFriends   = &Error{Kind: ErrConflict, Message: "Already friends"}
)

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }
func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }
func unauthenticated(msg string) error { return &Error{Kind: ErrUnauthenticated, Message: msg} }
func duplicateRequest(msg string) error { return &Error{Kind: ErrDuplicateRequest, Message: msg} }

func fromValidation(verr *validation.RequestValidationError) error {
	return &Error{Kind: ErrValidation, Message: verr.Error()}
}

// storeError maps repository errors that carry client meaning. A missing
// document becomes NotFound with msg, a unique violation becomes Conflict,
// anything else is returned unchanged.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return notFound(msg)
	}
	var dup *database.DuplicateKeyError
	if errors.As(err, &dup) {
		return conflict(fmt.Sprintf("This %s is already in use", dup.Field))
	}
	return err
}

// KindOf returns the kind of err, or nil for internal failures.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	switch KindOf(err) {
	case ErrValidation:
		return "validation"
	case ErrUnauthenticated:
		return "unauthenticated"
	case ErrForbidden:
		return "forbidden"
	case ErrNotFound:
		return "not_found"
	case ErrConflict:
		return "conflict"
	default:
		return "internal"
	}
}
