//go:build !linux

package led

func Query(path string) (State, error) {
	return State{}, &DeviceError{Path: path, cause: ErrUnsupported}
}
