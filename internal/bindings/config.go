//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"os"
	"path"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// EnvLibraryPath names the environment variable holding an explicit path to
// the tdjson shared library. It is tried before any built-in location.
const EnvLibraryPath = "TDLIB_LIBRARY_PATH"

// Config controls where the library is searched for.
type Config struct {
	// LibraryPath is an explicit override. When empty the value of
	// TDLIB_LIBRARY_PATH is used at search time.
	LibraryPath string

	// RelativePath is resolved against the directory of the running
	// executable. Forward slashes are converted to the platform separator.
	RelativePath string

	// SearchPaths are extra absolute locations tried after the built-in ones.
	SearchPaths []string

	// NoSystemPaths drops the built-in deployment and system locations.
	NoSystemPaths bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		RelativePath: path.Join("..", "vendor", "tdlib", "lib", platform.LibraryFileName()),
	}
}

// ConfigFromEnv returns DefaultConfig with LibraryPath taken from
// TDLIB_LIBRARY_PATH.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.LibraryPath = os.Getenv(EnvLibraryPath)
	return cfg
}

func (c Config) override() string {
	if c.LibraryPath != "" {
		return c.LibraryPath
	}
	return os.Getenv(EnvLibraryPath)
}
