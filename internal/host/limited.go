package host

import (
	"syscall"

	"golang.org/x/sync/semaphore"
)

// Limited caps the number of threads that may be alive at once. Creating a
// thread past the cap fails immediately with EAGAIN, the same way a process
// out of thread resources would. A slot is returned when the thread's entry
// function finishes.
type Limited struct {
	Host
	slots *semaphore.Weighted
}

// NewLimited wraps h so that at most max threads run concurrently.
func NewLimited(h Host, max int64) *Limited {
	return &Limited{
		Host:  h,
		slots: semaphore.NewWeighted(max),
	}
}

// CreateThread acquires a slot without blocking and then delegates.
func (l *Limited) CreateThread(entry Entry, ctx any) (Thread, error) {
	if !l.slots.TryAcquire(1) {
		return 0, syscall.EAGAIN
	}

	t, err := l.Host.CreateThread(func(ctx any) any {
		defer l.slots.Release(1)
		return entry(ctx)
	}, ctx)
	if err != nil {
		l.slots.Release(1)
		return 0, err
	}
	return t, nil
}
