//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform detection and the native library loader
// used by tdjson. It hides the OS loader API (dlopen or LoadLibrary) behind the
// Loader interface so the rest of the module never touches it directly.
package platform

import (
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// purego only supports 64-bit platforms.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryBaseName is the unadorned name of the TDLib JSON client library.
const LibraryBaseName = "tdjson"

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific library filename.
//
// Examples:
//   - Linux:   FormatLibraryName("tdjson") -> "libtdjson.so"
//   - macOS:   FormatLibraryName("tdjson") -> "libtdjson.dylib"
//   - Windows: FormatLibraryName("tdjson") -> "tdjson.dll"
func FormatLibraryName(name string) string {
	return LibraryPrefix + name + LibraryExtension
}

// LibraryFileName returns the filename of the tdjson library on this platform.
func LibraryFileName() string {
	return FormatLibraryName(LibraryBaseName)
}

// Library is an open handle to a shared library.
type Library interface {
	// Handle returns the raw loader handle. It is only meaningful for diagnostics.
	Handle() uintptr

	// Resolve looks up the exported function name and stores a callable Go
	// function in fptr, which must be a pointer to a variable of func type.
	Resolve(name string, fptr any) error

	// Close releases the handle.
	Close() error
}

// Loader opens shared libraries.
type Loader interface {
	Open(path string) (Library, error)
}

// Native is the loader backed by the operating system.
var Native Loader = nativeLoader{}

