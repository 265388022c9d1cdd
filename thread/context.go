package thread

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// threadContext is a WorkItem with its type parameters erased so it can
// cross the host's fixed-signature thread entry.
type threadContext interface {
	run() any
}

// resultBox carries a thread's result back to the joiner.
type resultBox[R any] struct {
	value R
	err   error
}

// run executes the item and boxes whatever it produced. Panics are
// recovered here so they surface at Join instead of killing the process.
func (w WorkItem[A, R]) run() (out any) {
	box := &resultBox[R]{}
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			box.err = &PanicError{Value: r, Stack: buf[:n]}
			out = box
		}
	}()

	box.value = w.fn(w.arg)
	return box
}

// contextSlot holds a threadContext until exactly one party takes it: the
// spawned thread's trampoline, or the caller after a failed creation.
type contextSlot struct {
	owned atomic.Bool
	ctx   threadContext
	live  *atomic.Int64
}

func newContextSlot(ctx threadContext, live *atomic.Int64) *contextSlot {
	s := &contextSlot{ctx: ctx, live: live}
	s.owned.Store(true)
	live.Add(1)
	return s
}

// take hands out the context once; later calls get nil. The context stops
// counting as live the moment it is taken.
func (s *contextSlot) take() threadContext {
	if !s.owned.CompareAndSwap(true, false) {
		return nil
	}
	ctx := s.ctx
	s.ctx = nil
	s.live.Add(-1)
	return ctx
}

// destroy drops the context on the calling side.
func (s *contextSlot) destroy() {
	s.take()
}

// trampoline is the entry every spawned thread starts in. raw is always the
// *contextSlot created by the spawning call.
func trampoline(raw any) any {
	slot, ok := raw.(*contextSlot)
	if !ok {
		panic(fmt.Sprintf("thread: trampoline handed %T, want *contextSlot", raw))
	}

	ctx := slot.take()
	if ctx == nil {
		panic("thread: context consumed twice")
	}

	debugLog("trampoline running %T", ctx)
	return ctx.run()
}
