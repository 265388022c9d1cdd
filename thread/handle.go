package thread

import (
	"fmt"

	"github.com/utkarsh5026/threadme/internal/host"
)

// Handle identifies a spawned thread whose result has type R.
// It must be joined exactly once.
type Handle[R any] struct {
	launcher *Launcher
	id       host.Thread
}

// ID returns the host's identifier for the thread.
func (h *Handle[R]) ID() uint64 {
	return uint64(h.id)
}

// Join blocks until the thread terminates and returns its result. The
// result box is released before Join returns. Joining the same handle
// again fails with ESRCH.
func (h *Handle[R]) Join() (R, error) {
	var zero R

	raw, err := h.launcher.host.JoinThread(h.id)
	if err != nil {
		return zero, fmt.Errorf("join thread %d: %w", h.id, err)
	}

	// The trampoline always yields a box unless the thread was torn down
	// before its entry returned.
	if raw == nil {
		h.launcher.joined.Add(1)
		return zero, fmt.Errorf("join thread %d: %w", h.id, ErrThreadExited)
	}

	box, ok := raw.(*resultBox[R])
	if !ok {
		return zero, fmt.Errorf("join thread %d: got %T, want %T: %w", h.id, raw, zero, ErrResultType)
	}

	value, boxErr := box.value, box.err
	box.value, box.err = zero, nil
	h.launcher.joined.Add(1)
	debugLog("joined thread %d", h.id)

	if boxErr != nil {
		return zero, boxErr
	}
	return value, nil
}

// Join is the function form of h.Join.
func Join[R any](h *Handle[R]) (R, error) {
	return h.Join()
}
