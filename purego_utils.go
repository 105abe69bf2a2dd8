// Shared helpers for crossing the libvlc boundary.

package vlc

import (
	"os"
	"path/filepath"
	"unsafe"
)

// maxCStringLen bounds goStringFromPtr so a missing terminator cannot walk
// off into unrelated memory.
const maxCStringLen = 1 << 16

// goStringFromPtr converts a NUL-terminated C string pointer to a Go string.
func goStringFromPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := unsafe.Pointer(ptr)
	var length int
	for length < maxCStringLen {
		if *(*byte)(unsafe.Add(p, length)) == 0 {
			break
		}
		length++
	}
	if length == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), length))
}

// cStringArray builds a NUL-terminated argv for libvlc_new. The returned
// byte slices must stay reachable for the duration of the call.
func cStringArray(args []string) ([]*byte, [][]byte) {
	if len(args) == 0 {
		return nil, nil
	}
	backing := make([][]byte, len(args))
	ptrs := make([]*byte, len(args)+1)
	for i, arg := range args {
		b := make([]byte, len(arg)+1)
		copy(b, arg)
		backing[i] = b
		ptrs[i] = &b[0]
	}
	return ptrs, backing
}

// findModuleRoot walks up the directory tree from the current working directory
// to find the module root (directory containing go.mod).
func findModuleRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
