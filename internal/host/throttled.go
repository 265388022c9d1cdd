package host

import (
	"syscall"

	"golang.org/x/time/rate"
)

// Throttled limits how fast threads may be created using a token bucket.
// Creation never waits for a token: over budget it fails with EAGAIN.
type Throttled struct {
	Host
	limiter *rate.Limiter
}

// NewThrottled wraps h with a budget of perSecond creations per second and
// the given burst.
func NewThrottled(h Host, perSecond float64, burst int) *Throttled {
	return &Throttled{
		Host:    h,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// CreateThread spends one token and then delegates.
func (t *Throttled) CreateThread(entry Entry, ctx any) (Thread, error) {
	if !t.limiter.Allow() {
		return 0, syscall.EAGAIN
	}
	return t.Host.CreateThread(entry, ctx)
}
