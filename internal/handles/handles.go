// Package handles provides the thread-safe registry that maps client ids to
// opaque native client handles.
//
// Native handles never leave this package's ownership while registered: a
// handle is handed to its release function only after its id has been
// removed, so a second Unregister for the same id cannot find it again.
package handles

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// IDPrefix is prepended to the sequence number of every client id.
const IDPrefix = "tdc-"

// Handle is an opaque native client handle. It is never dereferenced.
type Handle uintptr

// Registry maps client ids to handles.
//
// The id sequence has its own lock, separate from the map, and is never
// rewound, so ids are unique for the lifetime of the Registry.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle

	seqMu sync.Mutex
	seq   uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Register stores h and returns its new id.
// It panics if h is zero; only live native handles may be registered.
//
// Thread-safe.
func (r *Registry) Register(h Handle) string {
	if h == 0 {
		panic("handles: Register called with a zero handle")
	}
	id := r.nextID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[id] = h
	return id
}

func (r *Registry) nextID() string {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	r.seq++
	return IDPrefix + strconv.FormatUint(r.seq, 10)
}

// Lookup returns the handle registered under id.
//
// Thread-safe.
func (r *Registry) Lookup(id string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[id]
	return h, ok
}

// Unregister removes id and passes its handle to release while still holding
// the registry lock. It returns false if id is not registered, in which case
// release is not called. release may be nil.
//
// Any lock release takes must never be held by a caller of the Registry.
//
// Thread-safe.
func (r *Registry) Unregister(id string, release func(Handle)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[id]
	if !ok {
		return false
	}
	delete(r.handles, id)
	if release != nil {
		release(h)
	}
	return true
}

// Count returns the number of registered handles.
//
// Thread-safe.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// IDs returns the registered ids in creation order.
//
// Thread-safe.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.handles))
	for id := range r.handles {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return Seq(ids[i]) < Seq(ids[j])
	})
	return ids
}

// Seq returns the sequence number encoded in id, or 0 if id was not issued
// by a Registry.
func Seq(id string) uint64 {
	rest, ok := strings.CutPrefix(id, IDPrefix)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
