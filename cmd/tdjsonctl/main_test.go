//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/tdjson"
	"github.com/obinnaokechukwu/tdjson/internal/bindings/bindingstest"
	"github.com/obinnaokechukwu/tdjson/internal/platform/platformtest"
)

func TestCreateAll(t *testing.T) {
	const path = "/opt/tdlib/lib/libtdjson.so"
	loader := platformtest.NewLoader()
	fake := bindingstest.New()
	fake.Install(loader, path)

	b := tdjson.New(
		tdjson.WithLoader(loader),
		tdjson.WithConfig(tdjson.Config{LibraryPath: path, NoSystemPaths: true}),
		tdjson.WithWorkers(3),
	)

	ids, err := createAll(context.Background(), b, 25)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.NotEmpty(t, id)
		seen[id] = true
	}
	assert.Len(t, seen, 25)
	assert.Equal(t, 25, fake.Live())

	require.NoError(t, b.Close())
	assert.Equal(t, 0, fake.Live())
}

func TestCreateAllStopsOnFailure(t *testing.T) {
	b := tdjson.New(
		tdjson.WithLoader(platformtest.NewLoader()),
		tdjson.WithConfig(tdjson.Config{LibraryPath: "/missing/libtdjson.so", NoSystemPaths: true}),
	)

	_, err := createAll(context.Background(), b, 4)
	assert.ErrorIs(t, err, tdjson.ErrLibraryNotFound)
}

func TestNewLogger(t *testing.T) {
	quiet, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.DebugLevel))

	verbose, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zap.DebugLevel))
}
