package host

import (
	"sync"
	"syscall"
)

// cyclic is the rendezvous resource behind a Barrier identifier.
// Each generation owns a release channel that is closed when the last
// participant arrives; the arrival count and channel are swapped under the
// same lock, so a fast participant re-entering Wait always joins the next
// generation and can never consume a wakeup meant for the previous one.
type cyclic struct {
	mu        sync.Mutex
	count     int
	arrived   int
	release   chan struct{}
	destroyed bool
}

func newCyclic(count int) *cyclic {
	return &cyclic{
		count:   count,
		release: make(chan struct{}),
	}
}

func (c *cyclic) wait() (bool, error) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return false, syscall.EINVAL
	}

	c.arrived++
	if c.arrived == c.count {
		close(c.release)
		c.release = make(chan struct{})
		c.arrived = 0
		c.mu.Unlock()
		return true, nil
	}

	release := c.release
	c.mu.Unlock()

	<-release
	return false, nil
}

func (c *cyclic) destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return syscall.EINVAL
	}
	if c.arrived > 0 {
		return syscall.EBUSY
	}
	c.destroyed = true
	return nil
}
