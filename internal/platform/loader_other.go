//go:build !darwin && !freebsd && !linux && !windows && !ios && !android && (amd64 || arm64)

package platform

import (
	"fmt"
	"runtime"
)

type nativeLoader struct{}

func (nativeLoader) Open(path string) (Library, error) {
	return nil, fmt.Errorf("loading %s: dynamic loading is not supported on %s/%s", path, runtime.GOOS, runtime.GOARCH)
}
