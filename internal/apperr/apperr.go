// Package apperr defines the closed set of failure kinds returned by the
// resource services. The HTTP layer dispatches on Kind only.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure
type Kind int

const (
	// KindStorageFailure is also the classification of any error that is not an *Error
	KindStorageFailure Kind = iota
	KindInvalidIdentifier
	KindInvalidQuery
	KindInvalidPayload
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindInvalidQuery:
		return "invalid_query"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindNotFound:
		return "not_found"
	default:
		return "storage_failure"
	}
}

// Error is a failure with a kind and a human readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can compare against the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier, Message: "invalid identifier"}
	ErrInvalidQuery      = &Error{Kind: KindInvalidQuery, Message: "invalid query"}
	ErrInvalidPayload    = &Error{Kind: KindInvalidPayload, Message: "invalid payload"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrStorageFailure    = &Error{Kind: KindStorageFailure, Message: "storage failure"}
)

func InvalidIdentifier(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidIdentifier, Message: fmt.Sprintf(format, args...)}
}

func InvalidQuery(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidQuery, Message: fmt.Sprintf(format, args...)}
}

func InvalidPayload(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidPayload, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a failure reported by the database. A nil err returns nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorageFailure, Message: op, Err: err}
}

// KindOf reports the kind of err. Errors that are not *Error are storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}

// MessageOf returns the message of an *Error, or "" for foreign errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
