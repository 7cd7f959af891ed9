//go:build !ios && !android && (amd64 || arm64)

package tdjson

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/tdjson/internal/bindings"
	"github.com/obinnaokechukwu/tdjson/internal/handles"
)

// MaxReceiveTimeout is the largest timeout, in seconds, accepted by Receive.
const MaxReceiveTimeout = 300.0

// CreateClient creates a client and returns its id ("tdc-<n>").
//
// The first call locates and loads the library, which touches the disk; it
// blocks the calling goroutine. Use CreateClientAsync to keep that work off
// the caller. ctx bounds only the wait for a free worker slot: once creation
// has started it runs to completion.
func (b *Bridge) CreateClient(ctx context.Context) (string, error) {
	if err := b.workers.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer b.workers.Release(1)

	return b.createClient()
}

func (b *Bridge) createClient() (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = bindings.Unknown(fmt.Sprintf("panic while creating client: %v", r), fmt.Errorf("%v", r))
			b.log.Error("tdjson client creation panicked", zap.Any("panic", r))
		}
	}()

	if err := b.binder.Load(b.cfg); err != nil {
		return "", err
	}

	h, err := b.binder.Create()
	if err != nil {
		return "", err
	}

	id = b.clients.Register(handles.Handle(h))
	b.log.Debug("tdjson client created", zap.String("client_id", id))
	return id, nil
}

// DestroyClient destroys the client and permanently retires its id.
//
// The id is removed before the native handle is released, so concurrent
// DestroyClient calls for the same id release it once; the others get
// ErrClientNotFound. If the library has no destroy entry point the native
// client is left alone and no error is reported.
func (b *Bridge) DestroyClient(id string) error {
	released := false
	// Registry lock, then binding lock inside Destroy. Never the reverse.
	ok := b.clients.Unregister(id, func(h handles.Handle) {
		released = b.binder.Destroy(uintptr(h))
	})
	if !ok {
		return bindings.ClientNotFound(id)
	}

	if released {
		b.log.Debug("tdjson client destroyed", zap.String("client_id", id))
	} else {
		b.log.Warn("tdjson destroy unavailable; native client not released", zap.String("client_id", id))
	}
	return nil
}

// Send queues request for the client. It does not wait for a response.
func (b *Bridge) Send(id, request string) error {
	h, err := b.lookup(id)
	if err != nil {
		return err
	}
	return b.binder.Send(uintptr(h), request)
}

// Receive waits up to timeout seconds for the next response or update for
// the client. ok is false when nothing arrived in time.
//
// timeout must be within [0, MaxReceiveTimeout]. Receive blocks the calling
// goroutine inside the native library for at most that long.
func (b *Bridge) Receive(id string, timeout float64) (resp string, ok bool, err error) {
	if math.IsNaN(timeout) || timeout < 0 || timeout > MaxReceiveTimeout {
		return "", false, bindings.InvalidArgument("Timeout must be between 0 and 300 seconds")
	}

	h, err := b.lookup(id)
	if err != nil {
		return "", false, err
	}
	return b.binder.Receive(uintptr(h), timeout)
}

// Execute runs a synchronous request that needs no client. It requires the
// library to be bound already (by CreateClient or Load) and never loads it.
// ok is false when the library returned no result.
func (b *Bridge) Execute(request string) (resp string, ok bool, err error) {
	return b.binder.Execute(request)
}

// Close destroys every registered client. The library stays loaded.
func (b *Bridge) Close() error {
	var err error
	for _, id := range b.clients.IDs() {
		if derr := b.DestroyClient(id); derr != nil && !errors.Is(derr, ErrClientNotFound) {
			err = multierr.Append(err, derr)
		}
	}
	return err
}

func (b *Bridge) lookup(id string) (handles.Handle, error) {
	h, ok := b.clients.Lookup(id)
	if !ok {
		return 0, bindings.ClientNotFound(id)
	}
	return h, nil
}

// Init loads the library for the default Bridge.
// It is safe to call multiple times.
func Init() error {
	return Default().Load()
}

// IsLoaded returns true if the default Bridge has bound the library.
func IsLoaded() bool {
	return Default().IsReady()
}

// CreateClient creates a client on the default Bridge.
func CreateClient(ctx context.Context) (string, error) {
	return Default().CreateClient(ctx)
}

// DestroyClient destroys a client of the default Bridge.
func DestroyClient(id string) error {
	return Default().DestroyClient(id)
}

// Send sends a request through a client of the default Bridge.
func Send(id, request string) error {
	return Default().Send(id, request)
}

// Receive receives from a client of the default Bridge.
func Receive(id string, timeout float64) (string, bool, error) {
	return Default().Receive(id, timeout)
}

// Execute runs a synchronous request on the default Bridge.
func Execute(request string) (string, bool, error) {
	return Default().Execute(request)
}
