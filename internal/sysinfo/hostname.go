package sysinfo

import (
	"fmt"
	"os"
	"sync"
)

// Hostname is resolved once per process; later calls return the cached value
// (or the cached error).
var Hostname = sync.OnceValues(func() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("resolve hostname: %w", err)
	}
	return name, nil
})
