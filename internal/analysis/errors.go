package analysis

import (
	"errors"
	"fmt"
)

// Kind classifies a failed analysis so handlers can map it to the right HTTP
// status and user message.
type Kind string

const (
	// KindInput marks a submission that fails its own preconditions, such as
	// providing neither media nor text.
	KindInput Kind = "input"
	// KindMedia marks a local or sample media read/fetch failure.
	KindMedia Kind = "media"
	// KindTransport marks a backend invocation failure: network error,
	// non-success status, safety block, or timeout.
	KindTransport Kind = "transport"
	// KindValidation marks a backend response that came back but did not
	// satisfy the module's contract.
	KindValidation Kind = "validation"
	// KindConflict marks a submission rejected because one is already in
	// flight for the same module.
	KindConflict Kind = "conflict"
)

// Error carries the failure kind alongside the wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified analysis error.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError classifies an underlying error.
func WrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the classification from err, defaulting to transport for
// anything unclassified reaching the module boundary.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}
