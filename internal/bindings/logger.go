//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the bindings package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the bindings package's logger.
// This must be called before the library is loaded.
func SetLogger(l *zap.Logger) {
	logger = l
}
