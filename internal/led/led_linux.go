//go:build linux

package led

import (
	"os"

	"golang.org/x/sys/unix"
)

// linux/kd.h
const (
	kdgkbled = 0x4B64

	kScrollLock = 0x01
	kNumLock    = 0x02
	kCapsLock   = 0x04
)

// Query opens path read-only and asks the kernel for the LED flags.
func Query(path string) (State, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return State{}, &DeviceError{Path: path, cause: err}
	}
	defer f.Close()

	flags, err := unix.IoctlGetInt(int(f.Fd()), kdgkbled)
	if err != nil {
		return State{}, &DeviceError{Path: path, cause: err}
	}
	return decode(flags), nil
}

func decode(flags int) State {
	// The kernel writes a single byte.
	flags &= 0xff
	return State{
		NumLock:    flags&kNumLock != 0,
		CapsLock:   flags&kCapsLock != 0,
		ScrollLock: flags&kScrollLock != 0,
	}
}
