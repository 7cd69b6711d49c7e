package led

import (
	"errors"
	"fmt"
)

// State is the keyboard lock LED state of a console.
type State struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
}

var ErrUnsupported = errors.New("keyboard LED query not supported on this platform")

// DeviceError means the console device could not be opened or queried.
type DeviceError struct {
	Path  string
	cause error
}

func (e *DeviceError) Error() string {
	if e == nil {
		return "console device error"
	}
	if e.cause == nil {
		return fmt.Sprintf("console device %q unavailable", e.Path)
	}
	return fmt.Sprintf("console device %q: %v", e.Path, e.cause)
}

func (e *DeviceError) Unwrap() error { return e.cause }

func IsDeviceError(err error) bool {
	var e *DeviceError
	return errors.As(err, &e)
}

// Querier reads LED state from a console device path.
type Querier func(path string) (State, error)
