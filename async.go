//go:build !ios && !android && (amd64 || arm64)

package tdjson

import (
	"context"
)

// Future is the pending result of CreateClientAsync. Futures are only
// obtained from CreateClientAsync; the zero value never completes.
type Future struct {
	done chan struct{}
	id   string
	err  error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the client is created or ctx is done. Giving up on the
// wait does not cancel the creation.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.id, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Result blocks until the client is created.
func (f *Future) Result() (string, error) {
	<-f.done
	return f.id, f.err
}

// CreateClientAsync creates a client on a worker goroutine. The outcome is
// delivered to callback, if non-nil, and through the returned Future; both
// see the same id and error. callback runs on the worker goroutine after the
// Future has completed.
func (b *Bridge) CreateClientAsync(callback func(id string, err error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		f.id, f.err = b.CreateClient(context.Background())
		close(f.done)
		if callback != nil {
			callback(f.id, f.err)
		}
	}()
	return f
}

// CreateClientAsync creates a client on the default Bridge.
func CreateClientAsync(callback func(id string, err error)) *Future {
	return Default().CreateClientAsync(callback)
}
