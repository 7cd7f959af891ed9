//go:build !ios && !android && (amd64 || arm64)

package bindings

import "unsafe"

// goString copies the NUL-terminated C string at ptr into Go memory.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := *(*unsafe.Pointer)(unsafe.Pointer(&ptr))
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}
