//go:build !(darwin || linux)

package vlc

import "testing"

func nativeBlock(t testing.TB, _ int) []byte {
	t.Skip("native test memory needs mmap")
	return nil
}

func nativeAt[T any]([]byte, int) *T { return nil }

func nativeAddr([]byte, int) uintptr { return 0 }
