//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

// Probe reports whether path holds a usable tdjson library: the loader must
// accept it and td_json_client_create must resolve. The trial handle is
// always closed before returning, so probing leaves no global state behind.
func Probe(loader platform.Loader, path string) error {
	if path == "" {
		return errors.New("empty path")
	}

	lib, err := loader.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lib.Close()
	}()

	var create CreateFunc
	if err := lib.Resolve(SymbolCreate, &create); err != nil {
		return fmt.Errorf("%s: %w", SymbolCreate, err)
	}
	return nil
}

// FindLibraryPath returns the first candidate that probes successfully.
//
// When none does, the error lists every candidate in order together with the
// last loader error. The individual probe failures are combined with multierr
// and can be recovered with multierr.Errors(errors.Unwrap(err)).
func FindLibraryPath(loader platform.Loader, candidates []string) (string, error) {
	var (
		failures error
		lastErr  error
	)

	for _, path := range candidates {
		err := Probe(loader, path)
		if err == nil {
			return path, nil
		}
		Logger().Debug("tdjson probe failed", zap.String("path", path), zap.Error(err))
		lastErr = err
		failures = multierr.Append(failures, fmt.Errorf("%s: %w", path, err))
	}

	var b strings.Builder
	if len(candidates) == 0 {
		b.WriteString("no candidate paths")
	} else {
		b.WriteString("tried paths:\n")
		for i, path := range candidates {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, path)
		}
		if lastErr != nil {
			b.WriteString("Last error: ")
			b.WriteString(lastErr.Error())
		}
	}
	b.WriteString("\nSet " + EnvLibraryPath + " environment variable to specify the library path.")

	return "", newError(KindLibraryNotFound, b.String(), failures)
}
