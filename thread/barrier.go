package thread

import (
	"log/slog"

	"github.com/utkarsh5026/threadme/internal/host"
)

// Barrier is a cyclic rendezvous for a fixed number of participants.
//
// Wait blocks until all participants of the current generation arrived,
// then releases them together and starts a new, empty generation. Any
// failure of the underlying primitive terminates the process.
type Barrier struct {
	host   host.Host
	id     host.Barrier
	count  int
	logger *slog.Logger
}

// NewBarrier allocates a barrier for n participants. It terminates the
// process if the rendezvous resource cannot be created (e.g. n <= 0).
//
// Only WithLogger applies to barriers; thread options are ignored.
func NewBarrier(n int, opts ...Option) *Barrier {
	cfg := newConfig(opts...)
	h := cfg.host
	if h == nil {
		h = sharedRuntime
	}

	b := &Barrier{
		host:   h,
		count:  n,
		logger: cfg.logger.With("participants", n),
	}

	id, err := h.BarrierInit(n)
	if err != nil {
		fatal(b.logger, "init", err)
		return nil
	}
	b.id = id
	return b
}

// Participants returns the number of threads that complete a generation.
func (b *Barrier) Participants() int {
	return b.count
}

// Wait blocks until the generation completes. It returns true for exactly
// one participant per generation, the one whose arrival released the
// others; every other participant gets false.
func (b *Barrier) Wait() bool {
	serial, err := b.host.BarrierWait(b.id)
	if err != nil {
		fatal(b.logger, "wait", err)
		return false
	}
	return serial
}

// Close releases the rendezvous resource. It must be called exactly once,
// after the last generation; closing while participants are still waiting
// or closing twice terminates the process.
func (b *Barrier) Close() {
	if err := b.host.BarrierDestroy(b.id); err != nil {
		fatal(b.logger, "destroy", err)
	}
}
