package thread

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/utkarsh5026/threadme/internal/host"
)

var (
	sharedRuntime   = host.NewRuntime()
	defaultLauncher = NewLauncher()
)

// Launcher creates OS threads through a configured host. The zero value is
// not usable; create one with NewLauncher. A Launcher is safe for
// concurrent use.
type Launcher struct {
	id     uuid.UUID
	host   host.Host
	logger *slog.Logger

	spawned  atomic.Int64
	failed   atomic.Int64
	joined   atomic.Int64
	contexts atomic.Int64
}

// NewLauncher creates a Launcher with the given options.
//
// Example:
//
//	l := NewLauncher(WithThreadLimit(64), WithCPUAffinity(0))
//	h, err := SpawnOn(l, work, arg)
func NewLauncher(opts ...Option) *Launcher {
	cfg := newConfig(opts...)
	id := uuid.New()
	return &Launcher{
		id:     id,
		host:   cfg.buildHost(),
		logger: cfg.logger.With("launcher", id.String()),
	}
}

// Default returns the Launcher used by Spawn.
func Default() *Launcher {
	return defaultLauncher
}

// ID identifies the launcher in log records.
func (l *Launcher) ID() uuid.UUID {
	return l.id
}

// Stats returns a snapshot of the launcher's counters.
func (l *Launcher) Stats() Stats {
	return Stats{
		Spawned:      l.spawned.Load(),
		Failed:       l.failed.Load(),
		Joined:       l.joined.Load(),
		LiveContexts: l.contexts.Load(),
	}
}

// Spawn runs fn(arg) on a new OS thread created by the default launcher.
//
// On failure no thread exists, the returned handle is nil, and the error
// wraps the native syscall.Errno (see Code).
func Spawn[A any, R any](fn func(A) R, arg A) (*Handle[R], error) {
	return SpawnItem(defaultLauncher, NewWorkItem(fn, arg))
}

// SpawnOn runs fn(arg) on a new OS thread created by l.
func SpawnOn[A any, R any](l *Launcher, fn func(A) R, arg A) (*Handle[R], error) {
	return SpawnItem(l, NewWorkItem(fn, arg))
}

// SpawnItem runs item on a new OS thread created by l. Ownership of the
// item's context moves into the new thread; if creation fails the context
// is destroyed before SpawnItem returns.
func SpawnItem[A any, R any](l *Launcher, item WorkItem[A, R]) (*Handle[R], error) {
	if item.fn == nil {
		l.failed.Add(1)
		return nil, fmt.Errorf("spawn thread: nil closure: %w", errInvalid)
	}

	slot := newContextSlot(item, &l.contexts)

	id, err := l.host.CreateThread(trampoline, slot)
	if err != nil {
		slot.destroy()
		l.failed.Add(1)
		l.logger.Warn("thread creation failed", "err", err, "code", Code(err))
		return nil, fmt.Errorf("spawn thread: %w", err)
	}

	l.spawned.Add(1)
	debugLog("spawned thread %d", id)
	return &Handle[R]{launcher: l, id: id}, nil
}
