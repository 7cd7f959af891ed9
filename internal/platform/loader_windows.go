//go:build windows && (amd64 || arm64)

package platform

import (
	"fmt"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

type nativeLoader struct{}

func (nativeLoader) Open(path string) (Library, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("LoadLibrary %s: %w", path, err)
	}
	return &dynLib{handle: h}, nil
}

type dynLib struct {
	handle windows.Handle
}

func (l *dynLib) Handle() uintptr {
	return uintptr(l.handle)
}

func (l *dynLib) Resolve(name string, fptr any) error {
	proc, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return fmt.Errorf("GetProcAddress %s: %w", name, err)
	}
	purego.RegisterFunc(fptr, proc)
	return nil
}

func (l *dynLib) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := windows.FreeLibrary(l.handle)
	l.handle = 0
	return err
}
