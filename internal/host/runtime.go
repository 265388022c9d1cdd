package host

import (
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/utkarsh5026/threadme/internal/cpu"
)

// Runtime is the Host backed by the Go runtime. Every created thread is a
// goroutine locked to its own OS thread for its whole life, so the OS thread
// is torn down when the entry function returns.
type Runtime struct {
	threads  sync.Map // Thread -> *osThread
	barriers sync.Map // Barrier -> *cyclic

	nextThread  atomic.Uint64
	nextBarrier atomic.Uint64

	// PinThreads pins the n-th created thread to allowed CPU slot FirstCPU+n.
	PinThreads bool
	FirstCPU   int
}

type osThread struct {
	done chan struct{}
	ret  any
}

// NewRuntime returns a Host that creates unpinned OS threads.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// NewPinnedRuntime returns a Host that pins created threads round-robin
// across CPUs starting at firstCPU.
func NewPinnedRuntime(firstCPU int) *Runtime {
	return &Runtime{PinThreads: true, FirstCPU: firstCPU}
}

// CreateThread starts entry(ctx) on a dedicated OS thread.
func (r *Runtime) CreateThread(entry Entry, ctx any) (Thread, error) {
	if entry == nil {
		return 0, syscall.EINVAL
	}

	id := Thread(r.nextThread.Add(1))
	t := &osThread{done: make(chan struct{})}
	r.threads.Store(id, t)

	cpuID := cpu.NoAffinity
	if r.PinThreads {
		cpuID = r.FirstCPU + int(id-1)
	}

	go func() {
		defer close(t.done)
		// A failed pin still leaves the goroutine locked; the thread just
		// keeps the scheduler's default placement.
		_ = cpu.LockThread(cpuID)
		t.ret = entry(ctx)
	}()

	return id, nil
}

// JoinThread waits for t and returns its raw termination value. The
// identifier is released before waiting, so a second join fails with ESRCH.
func (r *Runtime) JoinThread(t Thread) (any, error) {
	v, ok := r.threads.LoadAndDelete(t)
	if !ok {
		return nil, syscall.ESRCH
	}

	th := v.(*osThread)
	<-th.done
	ret := th.ret
	th.ret = nil
	return ret, nil
}

// BarrierInit allocates a cyclic rendezvous for count participants.
func (r *Runtime) BarrierInit(count int) (Barrier, error) {
	if count <= 0 {
		return 0, syscall.EINVAL
	}

	id := Barrier(r.nextBarrier.Add(1))
	r.barriers.Store(id, newCyclic(count))
	return id, nil
}

// BarrierWait parks the caller until the generation completes.
func (r *Runtime) BarrierWait(b Barrier) (bool, error) {
	v, ok := r.barriers.Load(b)
	if !ok {
		return false, syscall.EINVAL
	}
	return v.(*cyclic).wait()
}

// BarrierDestroy releases b.
func (r *Runtime) BarrierDestroy(b Barrier) error {
	v, ok := r.barriers.Load(b)
	if !ok {
		return syscall.EINVAL
	}
	if err := v.(*cyclic).destroy(); err != nil {
		return err
	}
	r.barriers.Delete(b)
	return nil
}

// LiveThreads reports how many created threads have not been joined yet.
func (r *Runtime) LiveThreads() int {
	n := 0
	r.threads.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
