//go:build !ios && !android && (amd64 || arm64)

package tdjson

import (
	"github.com/obinnaokechukwu/tdjson/internal/bindings"
)

// Error is the error type returned by every tdjson operation.
// Use errors.Is with the Err* values, or KindOf, to classify it.
type Error = bindings.Error

// Kind categorizes an Error.
type Kind = bindings.Kind

// Error kinds.
const (
	// KindLibraryNotLoaded: the loader rejected the library, or an entry
	// point was used before the library was bound.
	KindLibraryNotLoaded = bindings.KindLibraryNotLoaded

	// KindSymbolNotFound: a required entry point is missing from the library.
	KindSymbolNotFound = bindings.KindSymbolNotFound

	// KindLibraryNotFound: no candidate location holds a usable library.
	KindLibraryNotFound = bindings.KindLibraryNotFound

	// KindClientNotFound: the client id is not registered.
	KindClientNotFound = bindings.KindClientNotFound

	// KindClientCreateFailed: td_json_client_create returned null.
	KindClientCreateFailed = bindings.KindClientCreateFailed

	// KindInvalidArgument: an argument is missing or out of range.
	KindInvalidArgument = bindings.KindInvalidArgument

	// KindUnknown: anything else.
	KindUnknown = bindings.KindUnknown
)

// Common errors
var (
	ErrLibraryNotLoaded   = bindings.ErrLibraryNotLoaded
	ErrSymbolNotFound     = bindings.ErrSymbolNotFound
	ErrLibraryNotFound    = bindings.ErrLibraryNotFound
	ErrClientNotFound     = bindings.ErrClientNotFound
	ErrClientCreateFailed = bindings.ErrClientCreateFailed
	ErrInvalidArgument    = bindings.ErrInvalidArgument
	ErrUnknown            = bindings.ErrUnknown
)

// KindOf returns the Kind of err, or "" if err did not come from tdjson.
func KindOf(err error) Kind {
	return bindings.KindOf(err)
}
