package thread

import (
	"log/slog"

	"github.com/utkarsh5026/threadme/internal/cpu"
	"github.com/utkarsh5026/threadme/internal/host"
)

// Option is a functional option for configuring a Launcher or Barrier.
type Option func(*config)

type config struct {
	host        host.Host
	threadLimit int64
	spawnRate   float64
	spawnBurst  int
	firstCPU    int
	logger      *slog.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		firstCPU: cpu.NoAffinity,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// WithThreadLimit caps the number of threads alive at once. Spawning past
// the cap fails with EAGAIN. A thread's slot frees up when its closure
// returns, not when it is joined.
func WithThreadLimit(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.threadLimit = int64(n)
		}
	}
}

// WithSpawnRate limits thread creation to perSecond per second with the
// given burst. Spawning over budget fails with EAGAIN; it never waits.
//
// Example:
//
//	WithSpawnRate(100, 10) // 100 threads/sec, burst of 10
func WithSpawnRate(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.spawnRate = perSecond
			cfg.spawnBurst = burst
		}
	}
}

// WithCPUAffinity pins spawned threads round-robin across the CPUs the
// process may use, starting at the first-th one. Pinning is best effort
// and a no-op on macOS.
func WithCPUAffinity(first int) Option {
	return func(cfg *config) {
		if first >= 0 {
			cfg.firstCPU = first
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// withHost replaces the native thread API.
func withHost(h host.Host) Option {
	return func(cfg *config) {
		cfg.host = h
	}
}

// buildHost layers the configured limits over the base host.
func (cfg *config) buildHost() host.Host {
	h := cfg.host
	if h == nil {
		if cfg.firstCPU == cpu.NoAffinity {
			h = sharedRuntime
		} else {
			h = host.NewPinnedRuntime(cfg.firstCPU)
		}
	}

	if cfg.spawnRate > 0 {
		h = host.NewThrottled(h, cfg.spawnRate, cfg.spawnBurst)
	}
	if cfg.threadLimit > 0 {
		h = host.NewLimited(h, cfg.threadLimit)
	}
	return h
}
