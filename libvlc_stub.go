//go:build !darwin && !linux

package vlc

// loadLibVLC reports that dynamic loading is unsupported on this platform.
func loadLibVLC(libraryPath string) (*libvlcAPI, error) {
	return nil, ErrNotAvailable
}
