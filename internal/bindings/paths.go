//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// executableDir is swapped out in tests.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// CandidatePaths returns the ordered list of locations the library is
// searched in:
//  1. the explicit override (Config.LibraryPath or TDLIB_LIBRARY_PATH)
//  2. Config.RelativePath resolved against the executable's directory
//  3. built-in deployment and system locations for this OS
//  4. Config.SearchPaths
//
// Duplicates keep their first position.
func CandidatePaths(cfg Config) []string {
	var paths []string

	if p := cfg.override(); p != "" {
		paths = append(paths, p)
	}

	if cfg.RelativePath != "" {
		dir, err := executableDir()
		if err != nil {
			Logger().Debug("cannot determine executable directory")
			dir = ""
		}
		paths = append(paths, ResolvePath(dir, cfg.RelativePath))
	}

	if !cfg.NoSystemPaths {
		paths = append(paths, SystemPaths()...)
	}
	paths = append(paths, cfg.SearchPaths...)

	return dedupe(paths)
}

// ResolvePath joins rel onto baseDir and normalizes the result, resolving
// symlinks when the target exists. It never fails: an absolute rel is
// returned unchanged, an empty baseDir yields rel as given, and a path that
// cannot be resolved is returned joined but unresolved.
func ResolvePath(baseDir, rel string) string {
	if rel == "" {
		return rel
	}
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) || baseDir == "" {
		return rel
	}

	joined := filepath.Join(baseDir, rel)
	if real, err := filepath.EvalSymlinks(joined); err == nil {
		return real
	}
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

// SystemPaths returns the fixed deployment and system install locations for
// the current OS.
func SystemPaths() []string {
	name := platform.LibraryFileName()

	switch runtime.GOOS {
	case "windows":
		return []string{
			"C:\\tdlib\\bin\\" + name,
			"C:\\Program Files\\tdlib\\bin\\" + name,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/lib/" + name, // Apple Silicon
			"/usr/local/lib/" + name,    // Intel
			"/opt/tdlib/lib/" + name,
		}
	default:
		return []string{
			"/app/native/vendor/tdlib/lib/" + name,
			"/usr/src/app/native/vendor/tdlib/lib/" + name,
			"/usr/local/lib/" + name,
			"/opt/tdlib/lib/" + name,
			"/usr/lib/" + name,
		}
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
