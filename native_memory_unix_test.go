//go:build darwin || linux

package vlc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// nativeBlock returns size zeroed bytes outside the Go heap, the kind of
// memory libvlc hands to callbacks. Pointers into it survive checkptr.
func nativeBlock(t testing.TB, size int) []byte {
	t.Helper()
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	require.NoError(t, err)
	t.Cleanup(func() { _ = unix.Munmap(b) })
	return b
}

// nativeAt returns a typed view of b at byte offset off.
func nativeAt[T any](b []byte, off int) *T {
	return (*T)(unsafe.Pointer(&b[off]))
}

// nativeAddr is the address libvlc would pass for b[off].
func nativeAddr(b []byte, off int) uintptr {
	return uintptr(unsafe.Pointer(&b[off]))
}
