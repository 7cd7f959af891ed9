//go:build !ios && !android && (amd64 || arm64)

// Package bindingstest provides a fake tdjson backend.
//
// TDJSON implements the five td_json_client_* entry points in Go. Register its
// Symbols with a platformtest.Loader to drive bindings.Binder and the tdjson
// Bridge without a real TDLib build.
package bindingstest

import (
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/tdjson/internal/bindings"
	"github.com/obinnaokechukwu/tdjson/internal/platform/platformtest"
)

// TDJSON is a fake tdjson library.
type TDJSON struct {
	mu         sync.Mutex
	next       uintptr
	live       map[uintptr]bool
	sent       map[uintptr][]string
	queue      map[uintptr][]string
	destroyed  []uintptr
	timeouts   []float64
	execClient []uintptr
	failCreate bool
	execute    func(request string) (string, bool)
	onReceive  func(client uintptr, timeout float64)

	// C strings handed out stay referenced here so their memory is not
	// reclaimed while the caller still reads them.
	bufs [][]byte
}

// New returns a fake whose execute echoes the request back.
func New() *TDJSON {
	return &TDJSON{
		next:  0x7f00,
		live:  make(map[uintptr]bool),
		sent:  make(map[uintptr][]string),
		queue: make(map[uintptr][]string),
		execute: func(request string) (string, bool) {
			return request, true
		},
	}
}

// Install registers the fake at path on loader, omitting the named symbols.
func (f *TDJSON) Install(loader *platformtest.Loader, path string, without ...string) {
	loader.Add(path, f.Symbols(without...))
}

// Symbols returns the fake's entry points keyed by symbol name, minus the
// names listed in without.
func (f *TDJSON) Symbols(without ...string) map[string]any {
	syms := map[string]any{
		bindings.SymbolCreate:  f.create,
		bindings.SymbolSend:    f.send,
		bindings.SymbolReceive: f.receive,
		bindings.SymbolExecute: f.exec,
		bindings.SymbolDestroy: f.destroy,
	}
	for _, name := range without {
		delete(syms, name)
	}
	return syms
}

// SetFailCreate makes create return a null handle.
func (f *TDJSON) SetFailCreate(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCreate = fail
}

// SetExecute replaces the execute behavior. Returning false yields a null
// result.
func (f *TDJSON) SetExecute(fn func(request string) (string, bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execute = fn
}

// OnReceive installs a hook run at the start of every receive call.
func (f *TDJSON) OnReceive(fn func(client uintptr, timeout float64)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onReceive = fn
}

// Push queues a response for the next receive on client.
func (f *TDJSON) Push(client uintptr, response string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue[client] = append(f.queue[client], response)
}

// Live returns the number of created and not yet destroyed clients.
func (f *TDJSON) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Sent returns the requests sent to client, in order.
func (f *TDJSON) Sent(client uintptr) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent[client]...)
}

// Destroyed returns destroyed handles in destruction order.
func (f *TDJSON) Destroyed() []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uintptr(nil), f.destroyed...)
}

// Timeouts returns the timeouts passed to receive.
func (f *TDJSON) Timeouts() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.timeouts...)
}

// ExecuteClients returns the client argument of every execute call.
func (f *TDJSON) ExecuteClients() []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uintptr(nil), f.execClient...)
}

func (f *TDJSON) create() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return 0
	}
	f.next += 8
	f.live[f.next] = true
	return f.next
}

func (f *TDJSON) send(client uintptr, request string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[client] = append(f.sent[client], request)
}

func (f *TDJSON) receive(client uintptr, timeout float64) uintptr {
	f.mu.Lock()
	hook := f.onReceive
	f.mu.Unlock()
	if hook != nil {
		hook(client, timeout)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeouts = append(f.timeouts, timeout)
	q := f.queue[client]
	if len(q) == 0 {
		return 0
	}
	f.queue[client] = q[1:]
	return f.cstring(q[0])
}

func (f *TDJSON) exec(client uintptr, request string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execClient = append(f.execClient, client)
	resp, ok := f.execute(request)
	if !ok {
		return 0
	}
	return f.cstring(resp)
}

func (f *TDJSON) destroy(client uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, client)
	f.destroyed = append(f.destroyed, client)
}

// cstring returns a NUL-terminated copy of s. Callers hold f.mu.
func (f *TDJSON) cstring(s string) uintptr {
	b := append([]byte(s), 0)
	f.bufs = append(f.bufs, b)
	return uintptr(unsafe.Pointer(&b[0]))
}
