//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

func stubExecutableDir(t *testing.T, dir string, err error) {
	t.Helper()
	orig := executableDir
	executableDir = func() (string, error) { return dir, err }
	t.Cleanup(func() { executableDir = orig })
}

func TestCandidatePathsOrder(t *testing.T) {
	binDir := filepath.Join(t.TempDir(), "bin")
	stubExecutableDir(t, binDir, nil)
	t.Setenv(EnvLibraryPath, "/custom/"+platform.LibraryFileName())

	paths := CandidatePaths(DefaultConfig())

	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, "/custom/"+platform.LibraryFileName(), paths[0])
	assert.Equal(t,
		filepath.Join(filepath.Dir(binDir), "vendor", "tdlib", "lib", platform.LibraryFileName()),
		paths[1])
	assert.Equal(t, SystemPaths(), paths[2:])
}

func TestCandidatePathsIgnoresEmptyOverride(t *testing.T) {
	stubExecutableDir(t, t.TempDir(), nil)
	t.Setenv(EnvLibraryPath, "")

	paths := CandidatePaths(DefaultConfig())
	assert.NotContains(t, paths, "")
	assert.Len(t, paths, 1+len(SystemPaths()))
}

func TestCandidatePathsKeepsWhitespaceOverride(t *testing.T) {
	t.Setenv(EnvLibraryPath, "   ")

	paths := CandidatePaths(Config{NoSystemPaths: true})
	assert.Equal(t, []string{"   "}, paths)

	t.Setenv(EnvLibraryPath, " /opt/lib.so")
	assert.Equal(t, " /opt/lib.so", ConfigFromEnv().LibraryPath)
}

func TestCandidatePathsExplicitOverrideWins(t *testing.T) {
	stubExecutableDir(t, t.TempDir(), nil)
	t.Setenv(EnvLibraryPath, "/from/env.so")

	cfg := DefaultConfig()
	cfg.LibraryPath = "/from/config.so"

	paths := CandidatePaths(cfg)
	assert.Equal(t, "/from/config.so", paths[0])
	assert.NotContains(t, paths, "/from/env.so")
}

func TestCandidatePathsExecutableDirUnavailable(t *testing.T) {
	stubExecutableDir(t, "", errors.New("no /proc"))
	t.Setenv(EnvLibraryPath, "")

	cfg := DefaultConfig()
	cfg.NoSystemPaths = true

	paths := CandidatePaths(cfg)
	assert.Equal(t, []string{filepath.FromSlash(cfg.RelativePath)}, paths)
}

func TestCandidatePathsSearchPathsAndDedupe(t *testing.T) {
	stubExecutableDir(t, t.TempDir(), nil)
	t.Setenv(EnvLibraryPath, "")

	sys := SystemPaths()
	cfg := Config{
		SearchPaths: []string{"/extra/" + platform.LibraryFileName(), sys[0], ""},
	}

	paths := CandidatePaths(cfg)
	assert.Equal(t, append(append([]string{}, sys...), "/extra/"+platform.LibraryFileName()), paths)
}

func TestResolvePath(t *testing.T) {
	base := t.TempDir()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ResolvePath(base, ""))
	})

	t.Run("absolute unchanged", func(t *testing.T) {
		abs := filepath.Join(base, "lib", "x.so")
		assert.Equal(t, abs, ResolvePath("/elsewhere", abs))
	})

	t.Run("no base dir", func(t *testing.T) {
		assert.Equal(t, filepath.FromSlash("../lib/x.so"), ResolvePath("", "../lib/x.so"))
	})

	t.Run("dot segments normalized", func(t *testing.T) {
		got := ResolvePath(filepath.Join(base, "a", "b"), "../../lib/./x.so")
		assert.Equal(t, filepath.Join(base, "lib", "x.so"), got)
	})

	t.Run("symlink resolved", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		realDir, err := filepath.EvalSymlinks(base)
		require.NoError(t, err)

		target := filepath.Join(realDir, "real.so")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
		require.NoError(t, os.Symlink(target, filepath.Join(realDir, "link.so")))

		assert.Equal(t, target, ResolvePath(realDir, "link.so"))
	})
}

func TestSystemPaths(t *testing.T) {
	paths := SystemPaths()
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Equal(t, platform.LibraryFileName(), filepath.Base(filepath.FromSlash(p)))
	}
}
