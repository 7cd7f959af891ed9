//go:build !ios && !android && (amd64 || arm64)

// Package tdjson drives TDLib's JSON client library (tdjson) without linking
// against it. The library is located and loaded at runtime with purego, and
// its td_json_client_* functions are exposed as a thread-safe string-in,
// string-out API over many logical clients.
//
// Payloads are passed through untouched: tdjson never parses requests or
// responses.
//
// Most programs use the package-level functions, which share one Bridge:
//
//	id, err := tdjson.CreateClientAsync(nil).Wait(ctx)
//	...
//	err = tdjson.Send(id, `{"@type":"getOption","name":"version"}`)
//	resp, ok, err := tdjson.Receive(id, 5)
//
// The library is searched for in TDLIB_LIBRARY_PATH, then next to the
// executable, then in the usual install locations. See CandidatePaths.
package tdjson

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/obinnaokechukwu/tdjson/internal/bindings"
	"github.com/obinnaokechukwu/tdjson/internal/handles"
	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// Re-exported loader types, for plugging in an alternative loader.
type (
	// Loader opens shared libraries.
	Loader = platform.Loader

	// Library is an open shared library.
	Library = platform.Library

	// Config controls where the library is searched for.
	Config = bindings.Config
)

// EnvLibraryPath is the environment variable consulted first for the
// library location.
const EnvLibraryPath = bindings.EnvLibraryPath

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return bindings.DefaultConfig()
}

// CandidatePaths returns the ordered locations searched for the library.
func CandidatePaths(cfg Config) []string {
	return bindings.CandidatePaths(cfg)
}

// FindLibrary returns the first candidate location holding a loadable tdjson.
// It does not bind the library.
func FindLibrary(cfg Config) (string, error) {
	return bindings.FindLibraryPath(platform.Native, bindings.CandidatePaths(cfg))
}

// Bridge owns one binding of the tdjson library and the clients created
// through it. A Bridge is safe for concurrent use.
type Bridge struct {
	cfg     Config
	binder  *bindings.Binder
	clients *handles.Registry
	workers *semaphore.Weighted
	log     *zap.Logger
}

type options struct {
	cfg     Config
	loader  Loader
	log     *zap.Logger
	workers int
}

// Option configures a Bridge.
type Option func(*options)

// WithConfig replaces the search configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLibraryPath sets an explicit library location, tried before
// TDLIB_LIBRARY_PATH and the built-in locations.
func WithLibraryPath(path string) Option {
	return func(o *options) {
		o.cfg.LibraryPath = path
	}
}

// WithLoader replaces the OS loader.
func WithLoader(l Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLogger sets the logger for client lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithWorkers bounds how many client creations run at once.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// New returns an unbound Bridge. Nothing is loaded until the first client is
// created or Load is called.
func New(opts ...Option) *Bridge {
	o := options{
		cfg:     DefaultConfig(),
		loader:  platform.Native,
		log:     bindings.Logger(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	return &Bridge{
		cfg:     o.cfg,
		binder:  bindings.NewBinder(o.loader),
		clients: handles.NewRegistry(),
		workers: semaphore.NewWeighted(int64(o.workers)),
		log:     o.log,
	}
}

// Load locates and binds the library if that has not happened yet.
// Client creation does this implicitly; Load is useful before Execute.
func (b *Bridge) Load() error {
	return b.binder.Load(b.cfg)
}

// IsReady returns true once the library is bound.
func (b *Bridge) IsReady() bool {
	return b.binder.IsBound()
}

var defaultBridge = sync.OnceValue(func() *Bridge {
	return New()
})

// Default returns the process-wide Bridge behind the package-level functions.
func Default() *Bridge {
	return defaultBridge()
}
