// Package apperror defines the tagged error variants shared by the service,
// its HTTP boundary and the clients that consume it.
package apperror

import (
	"errors"
	"fmt"
)

// Kind tags an error with a stable, machine-readable category.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDatabase
	KindConstraint
	KindDatabaseBusy
	KindNetwork
	KindFetch
	KindSearch
)

var kindCodes = map[Kind]string{
	KindInternal:     "internal_error",
	KindValidation:   "validation_error",
	KindNotFound:     "not_found",
	KindDatabase:     "database_error",
	KindConstraint:   "constraint_error",
	KindDatabaseBusy: "database_busy",
	KindNetwork:      "network_error",
	KindFetch:        "fetch_error",
	KindSearch:       "search_error",
}

// Code returns the wire code of the kind.
func (k Kind) Code() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return kindCodes[KindInternal]
}

func (k Kind) String() string { return k.Code() }

// KindFromCode maps a wire code back to its kind. Unknown codes are internal.
func KindFromCode(code string) Kind {
	for k, c := range kindCodes {
		if c == code {
			return k
		}
	}
	return KindInternal
}

// DefaultMessage is the user-facing text shown when an error carries none.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindValidation:
		return "Invalid request."
	case KindNotFound:
		return "Job not found."
	case KindDatabase:
		return "Database operation failed."
	case KindConstraint:
		return "The operation violates a database constraint."
	case KindDatabaseBusy:
		return "The database is temporarily busy. Please try again."
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindFetch:
		return "Failed to load jobs. Please try again."
	case KindSearch:
		return "Search failed. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// Error is a tagged error. Message is safe to show to users; Err is the cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// UserMessage returns Message or the kind's default text.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.DefaultMessage()
}

// Sentinels for errors.Is checks.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrDatabase     = &Error{Kind: KindDatabase}
	ErrConstraint   = &Error{Kind: KindConstraint}
	ErrDatabaseBusy = &Error{Kind: KindDatabaseBusy}
	ErrNetwork      = &Error{Kind: KindNetwork}
	ErrFetch        = &Error{Kind: KindFetch}
	ErrSearch       = &Error{Kind: KindSearch}
)

// New creates a tagged error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags err with kind. A nil err yields nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for a validation error.
func Validation(message string) *Error { return New(KindValidation, message) }

// NotFound is shorthand for a not-found error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As returns the first *Error in err's chain, or false.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
