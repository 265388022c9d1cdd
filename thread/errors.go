package thread

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrResultType is returned by Join when a thread's termination value is
	// not a result of the handle's type.
	ErrResultType = errors.New("thread: termination value has unexpected type")

	// ErrThreadExited is returned by Join when the closure neither returned
	// nor panicked, e.g. it called runtime.Goexit.
	ErrThreadExited = errors.New("thread: exited without producing a result")

	errInvalid = syscall.EINVAL
)

// PanicError is returned by Join when the thread's closure panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("thread panic: %v\nstack trace:\n%s", e.Value, e.Stack)
}

// Code returns the native error code carried by err: 0 for nil, the errno
// value when err wraps a syscall.Errno, and -1 for any other error.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return -1
}
