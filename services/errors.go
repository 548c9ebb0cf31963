// services/errors.go
package services

import "fmt"

// ErrorKind classifies a failed operation so handlers can pick a status code.
type ErrorKind int

const (
	// KindValidation: malformed or out-of-range input. Nothing was mutated.
	KindValidation ErrorKind = iota
	// KindNotFound: a referenced game, match or player does not exist or is
	// soft-deleted.
	KindNotFound
	// KindConflict: the operation is valid but the current state forbids it
	// (finished match, life already at maximum, players from mixed matches).
	KindConflict
	// KindInternal: persistence failure; surfaced once, never retried.
	KindInternal
)

// Error is the structured failure every service operation returns. The
// message is user-facing.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func internalErr(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// KindOf extracts the kind from a service error, defaulting to internal for
// anything untyped.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
