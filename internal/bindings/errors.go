//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"errors"
	"strings"
)

// Kind categorizes a bridge error.
type Kind string

const (
	KindLibraryNotLoaded   Kind = "library_not_loaded"
	KindSymbolNotFound     Kind = "symbol_not_found"
	KindLibraryNotFound    Kind = "library_not_found"
	KindClientNotFound     Kind = "client_not_found"
	KindClientCreateFailed Kind = "client_create_failed"
	KindInvalidArgument    Kind = "invalid_argument"
	KindUnknown            Kind = "unknown"
)

func (k Kind) message() string {
	switch k {
	case KindLibraryNotLoaded:
		return "TDLib library not loaded"
	case KindSymbolNotFound:
		return "TDLib symbol not found"
	case KindLibraryNotFound:
		return "TDLib library not found"
	case KindClientNotFound:
		return "TDLib client not found"
	case KindClientCreateFailed:
		return "failed to create TDLib client"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every bridge operation.
type Error struct {
	Cause  error
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("tdjson: ")
	b.WriteString(e.Kind.message())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// Sentinels for use with errors.Is.
var (
	ErrLibraryNotLoaded   = &Error{Kind: KindLibraryNotLoaded}
	ErrSymbolNotFound     = &Error{Kind: KindSymbolNotFound}
	ErrLibraryNotFound    = &Error{Kind: KindLibraryNotFound}
	ErrClientNotFound     = &Error{Kind: KindClientNotFound}
	ErrClientCreateFailed = &Error{Kind: KindClientCreateFailed}
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrUnknown            = &Error{Kind: KindUnknown}
)

// KindOf returns the Kind of err, or "" if err is not a bridge error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ClientNotFound builds the error reported for an unknown client id.
func ClientNotFound(id string) error {
	return newError(KindClientNotFound, id, nil)
}

// InvalidArgument builds an argument validation error.
func InvalidArgument(detail string) error {
	return newError(KindInvalidArgument, detail, nil)
}

// Unknown wraps an unanticipated failure.
func Unknown(detail string, cause error) error {
	return newError(KindUnknown, detail, cause)
}
