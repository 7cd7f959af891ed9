//go:build !ios && !android && (amd64 || arm64)

// Package platformtest provides an in-memory platform.Loader for tests.
//
// Libraries are registered by path together with Go implementations of their
// exported functions. Resolve assigns those implementations to the caller's
// func variables, so code written against platform.Loader can be exercised
// without a real shared library on disk.
package platformtest

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// Loader is a fake platform.Loader. The zero value is not usable; call NewLoader.
type Loader struct {
	mu     sync.Mutex
	libs   map[string]map[string]any
	opens  map[string]int
	live   int
	nextID uintptr
}

// NewLoader returns an empty fake loader. Every path fails to open until
// registered with Add.
func NewLoader() *Loader {
	return &Loader{
		libs:   make(map[string]map[string]any),
		opens:  make(map[string]int),
		nextID: 0x1000,
	}
}

// Add registers a library at path exporting the given symbols. Each symbol
// value must be a func convertible to the type the caller resolves it into.
func (l *Loader) Add(path string, symbols map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.libs[path] = symbols
}

// Open implements platform.Loader.
func (l *Loader) Open(path string) (platform.Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opens[path]++
	syms, ok := l.libs[path]
	if !ok {
		return nil, fmt.Errorf("%s: cannot open shared object file: No such file or directory", path)
	}
	l.live++
	l.nextID += 0x10
	return &library{loader: l, path: path, symbols: syms, handle: l.nextID}, nil
}

// Opens reports how many times path was passed to Open.
func (l *Loader) Opens(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opens[path]
}

// Live reports the number of libraries opened and not yet closed.
func (l *Loader) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

type library struct {
	loader  *Loader
	path    string
	symbols map[string]any
	handle  uintptr
	closed  bool
}

func (lib *library) Handle() uintptr {
	return lib.handle
}

func (lib *library) Resolve(name string, fptr any) error {
	fn, ok := lib.symbols[name]
	if !ok || fn == nil {
		return fmt.Errorf("%s: undefined symbol: %s", lib.path, name)
	}
	dst := reflect.ValueOf(fptr)
	if dst.Kind() != reflect.Pointer || dst.Elem().Kind() != reflect.Func {
		return fmt.Errorf("resolve %s: fptr must be a pointer to a func, got %T", name, fptr)
	}
	src := reflect.ValueOf(fn)
	if !src.Type().ConvertibleTo(dst.Elem().Type()) {
		return fmt.Errorf("resolve %s: %T is not convertible to %s", name, fn, dst.Elem().Type())
	}
	dst.Elem().Set(src.Convert(dst.Elem().Type()))
	return nil
}

func (lib *library) Close() error {
	lib.loader.mu.Lock()
	defer lib.loader.mu.Unlock()
	if lib.closed {
		return fmt.Errorf("%s: already closed", lib.path)
	}
	lib.closed = true
	lib.loader.live--
	return nil
}
