//go:build darwin

package cpu

import (
	"runtime"
)

// LockThread wires the calling goroutine to its OS thread.
// CPU pinning is not available on macOS, so slot is ignored.
func LockThread(slot int) error {
	runtime.LockOSThread()
	return nil
}
