// Package errs defines the structured error type shared across movieidx.
package errs

import "fmt"

// Kind classifies an error into one of the seven categories the engine
// distinguishes at its boundaries.
type Kind string

const (
	// BadTerm marks a diagnostic operation that received a term tokenizing
	// to zero or more than one token.
	BadTerm Kind = "bad_term"
	// UnknownDocument marks a diagnostic operation referencing a doc_id
	// absent from the loaded index.
	UnknownDocument Kind = "unknown_document"
	// CacheMissing marks a required persisted artifact absent at load time.
	CacheMissing Kind = "cache_missing"
	// CacheIncompatible marks a persisted artifact whose version byte does
	// not match what this build understands.
	CacheIncompatible Kind = "cache_incompatible"
	// NotInitialized marks semantic search invoked before load or build.
	NotInitialized Kind = "not_initialized"
	// EmptyText marks an embedding request for a whitespace-only string.
	EmptyText Kind = "empty_text"
	// ExternalFailure marks an embedder, filesystem, or LLM API error.
	ExternalFailure Kind = "external_failure"
)

// Error is the structured error type returned across package boundaries in
// movieidx. It carries a Kind for programmatic dispatch (errors.Is against
// a sentinel of the same Kind) plus a human-readable message and optional
// cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As chains through Cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errs.New(errs.BadTerm, "")) against a sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Of reports the Kind of err if it is (or wraps) an *Error, and ok=false
// otherwise.
func Of(err error) (Kind, bool) {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return "", false
	}
	return e.Kind, true
}
