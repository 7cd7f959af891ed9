//go:build !ios && !android && (amd64 || arm64)

package platformtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addFunc func(a, b int) int

func TestLoaderResolve(t *testing.T) {
	l := NewLoader()
	l.Add("/lib/libmath.so", map[string]any{
		"add": func(a, b int) int { return a + b },
	})

	lib, err := l.Open("/lib/libmath.so")
	require.NoError(t, err)
	assert.NotZero(t, lib.Handle())
	assert.Equal(t, 1, l.Live())

	var add addFunc
	require.NoError(t, lib.Resolve("add", &add))
	assert.Equal(t, 5, add(2, 3))

	err = lib.Resolve("sub", &add)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined symbol: sub")

	require.NoError(t, lib.Close())
	assert.Equal(t, 0, l.Live())
	assert.Error(t, lib.Close())
}

func TestLoaderRejectsMismatchedTypes(t *testing.T) {
	l := NewLoader()
	l.Add("x", map[string]any{"add": func() {}})

	lib, err := l.Open("x")
	require.NoError(t, err)
	defer lib.Close()

	var add addFunc
	assert.Error(t, lib.Resolve("add", &add))
	assert.Error(t, lib.Resolve("add", add))
}

func TestLoaderUnknownPath(t *testing.T) {
	l := NewLoader()

	_, err := l.Open("/nowhere/libtdjson.so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nowhere/libtdjson.so")
	assert.Equal(t, 1, l.Opens("/nowhere/libtdjson.so"))
	assert.Equal(t, 0, l.Live())
}
