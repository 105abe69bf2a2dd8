//go:build !darwin && !linux

package vlc

func lockMemory(b []byte) error { return nil }

func unlockMemory(b []byte) error { return nil }
