//go:build (darwin || freebsd || linux) && !ios && !android && (amd64 || arm64)

package platform

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type nativeLoader struct{}

// Open loads the library with RTLD_NOW | RTLD_GLOBAL. RTLD_GLOBAL is needed
// because tdjson pulls in sibling libraries that resolve symbols against it.
func (nativeLoader) Open(path string) (Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, fmt.Errorf("dlopen %s: nil handle", path)
	}
	return &dynLib{handle: h}, nil
}

type dynLib struct {
	handle uintptr
}

func (l *dynLib) Handle() uintptr {
	return l.handle
}

func (l *dynLib) Resolve(name string, fptr any) error {
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return err
	}
	if sym == 0 {
		return fmt.Errorf("dlsym %s: nil address", name)
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}

func (l *dynLib) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}
