//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the TDLib JSON client library at runtime and binds
// its five td_json_client_* entry points using purego.
//
// A Binder goes from unbound to bound exactly once. Binding either resolves
// every entry point or leaves the Binder exactly as it was before the attempt,
// so callers never observe a partially populated binding.
package bindings

import (
	"sync"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// Exported symbol names of the tdjson C interface.
const (
	SymbolCreate  = "td_json_client_create"
	SymbolSend    = "td_json_client_send"
	SymbolReceive = "td_json_client_receive"
	SymbolExecute = "td_json_client_execute"
	SymbolDestroy = "td_json_client_destroy"
)

// Signatures of the tdjson entry points. Client handles and returned C
// strings travel as uintptr; request strings are copied to NUL-terminated
// buffers by purego for the duration of the call.
type (
	CreateFunc  func() uintptr
	SendFunc    func(client uintptr, request string)
	ReceiveFunc func(client uintptr, timeout float64) uintptr
	ExecuteFunc func(client uintptr, request string) uintptr
	DestroyFunc func(client uintptr)
)

type entryPoints struct {
	create  CreateFunc
	send    SendFunc
	receive ReceiveFunc
	execute ExecuteFunc
	destroy DestroyFunc
}

// Binder owns one binding of the tdjson library.
type Binder struct {
	mu          sync.Mutex
	loader      platform.Loader
	lib         platform.Library
	path        string
	fn          entryPoints
	initialized bool
}

// NewBinder returns an unbound Binder that opens libraries with loader.
// A nil loader selects platform.Native.
func NewBinder(loader platform.Loader) *Binder {
	if loader == nil {
		loader = platform.Native
	}
	return &Binder{loader: loader}
}

// IsBound returns true once Bind has succeeded.
func (b *Binder) IsBound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized && b.lib != nil
}

// Load binds the first viable library among CandidatePaths(cfg).
// It is a no-op when already bound.
func (b *Binder) Load(cfg Config) error {
	if b.IsBound() {
		return nil
	}
	path, err := FindLibraryPath(b.loader, CandidatePaths(cfg))
	if err != nil {
		return err
	}
	return b.Bind(path)
}

// Bind opens the library at path and resolves all five entry points while
// holding the binder lock. It is a no-op when already bound; the first
// successful Bind wins for the life of the Binder.
//
// If any symbol is missing the library is closed and the Binder is reset to
// its empty state before the error is returned, so Bind may be retried.
func (b *Binder) Bind(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized && b.lib != nil {
		return nil
	}

	lib, err := b.loader.Open(path)
	if err != nil {
		b.reset()
		return newError(KindLibraryNotLoaded, err.Error(), err)
	}

	var fn entryPoints
	symbols := []struct {
		name string
		fptr any
	}{
		{SymbolCreate, &fn.create},
		{SymbolSend, &fn.send},
		{SymbolReceive, &fn.receive},
		{SymbolExecute, &fn.execute},
		{SymbolDestroy, &fn.destroy},
	}
	for _, s := range symbols {
		if err := lib.Resolve(s.name, s.fptr); err != nil {
			if cerr := lib.Close(); cerr != nil {
				Logger().Warn("tdjson close after failed bind", zap.String("path", path), zap.Error(cerr))
			}
			b.reset()
			return newError(KindSymbolNotFound, s.name, err)
		}
	}

	b.lib = lib
	b.path = path
	b.fn = fn
	b.initialized = true

	Logger().Info("tdjson library bound", zap.String("path", path))
	return nil
}

// reset returns the Binder to the unbound state. Callers hold b.mu.
func (b *Binder) reset() {
	b.lib = nil
	b.path = ""
	b.fn = entryPoints{}
	b.initialized = false
}

// Create calls td_json_client_create. A zero handle is reported as
// KindClientCreateFailed.
func (b *Binder) Create() (uintptr, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fn.create == nil {
		return 0, newError(KindLibraryNotLoaded, "API not initialized", nil)
	}
	client := b.fn.create()
	if client == 0 {
		return 0, newError(KindClientCreateFailed, SymbolCreate+" returned null", nil)
	}
	return client, nil
}

// Send calls td_json_client_send with request passed through verbatim.
func (b *Binder) Send(client uintptr, request string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fn.send == nil {
		return newError(KindLibraryNotLoaded, "send function not available", nil)
	}
	b.fn.send(client, request)
	return nil
}

// Receive calls td_json_client_receive. It may block for up to timeout
// seconds inside the native library. ok is false when no update arrived.
func (b *Binder) Receive(client uintptr, timeout float64) (resp string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fn.receive == nil {
		return "", false, newError(KindLibraryNotLoaded, "receive function not available", nil)
	}
	// The returned buffer is only valid until the next call into tdjson, so
	// it is copied before the lock is released.
	ptr := b.fn.receive(client, timeout)
	if ptr == 0 {
		return "", false, nil
	}
	return goString(ptr), true, nil
}

// Execute calls td_json_client_execute with a null client, the form tdjson
// accepts for synchronous requests.
func (b *Binder) Execute(request string) (resp string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fn.execute == nil {
		return "", false, newError(KindLibraryNotLoaded, "execute function not available", nil)
	}
	ptr := b.fn.execute(0, request)
	if ptr == 0 {
		return "", false, nil
	}
	return goString(ptr), true, nil
}

// Destroy calls td_json_client_destroy if the entry point is bound and
// reports whether it did. A missing destroy is tolerated.
func (b *Binder) Destroy(client uintptr) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fn.destroy == nil || client == 0 {
		return false
	}
	b.fn.destroy(client)
	return true
}

// Status is a snapshot of the binding.
type Status struct {
	Path        string
	Handle      uintptr
	Initialized bool
	HasCreate   bool
	HasSend     bool
	HasReceive  bool
	HasExecute  bool
	HasDestroy  bool
}

// Status returns a consistent snapshot of the binding.
func (b *Binder) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := Status{
		Path:        b.path,
		Initialized: b.initialized,
		HasCreate:   b.fn.create != nil,
		HasSend:     b.fn.send != nil,
		HasReceive:  b.fn.receive != nil,
		HasExecute:  b.fn.execute != nil,
		HasDestroy:  b.fn.destroy != nil,
	}
	if b.lib != nil {
		st.Handle = b.lib.Handle()
	}
	return st
}
