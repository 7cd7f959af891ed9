//go:build !ios && !android && (amd64 || arm64)

package tdjson

import (
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/tdjson/internal/bindings"
)

// SetLogger routes library search and binding diagnostics to l. Bridges
// created afterwards without WithLogger also log client events to l.
// Call it before the first Bridge is used.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	bindings.SetLogger(l)
}
