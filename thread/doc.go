// Package thread launches units of work on dedicated OS threads and joins
// them for a strongly-typed result, and provides a reusable barrier for a
// fixed number of participant threads.
//
// It is a low-level primitive layer meant for test harnesses and similar
// code that wants real OS threads with explicit lifecycles, not a runtime:
// there is no pooling, scheduling, cancellation or timeout.
//
// # Launch and Join
//
//	h, err := thread.Spawn(func(x int) int { return x * 2 }, 21)
//	if err != nil {
//	    // thread.Code(err) is the native error code, e.g. EAGAIN
//	}
//	v, err := h.Join() // v == 42
//
// Every spawned thread is a goroutine locked to its own OS thread for its
// whole life. The closure and its argument travel to that thread in a
// context that is consumed exactly once; the result comes back boxed and is
// unboxed and released by Join. Each Handle must be joined exactly once.
//
// A panic inside the closure is recovered on the thread and returned by
// Join as a *PanicError.
//
// # Barrier
//
//	b := thread.NewBarrier(4)
//	defer b.Close()
//	// in each of the 4 threads:
//	if b.Wait() {
//	    // exactly one participant per generation gets true
//	}
//
// A Barrier is cyclic: as soon as the Nth participant arrives, all N are
// released and the next generation starts empty.
//
// # Error Handling
//
// Thread creation and join failures are returned as errors wrapping a
// syscall.Errno; Code turns any error into the integer code (0 for nil).
// Barrier failures are not recoverable: a broken rendezvous cannot be used
// safely, so initialization, wait or close errors print a diagnostic and
// terminate the process.
//
// # Configuration Options
//
//   - WithThreadLimit(n): fail creation with EAGAIN past n live threads
//   - WithSpawnRate(perSecond, burst): fail creation with EAGAIN over budget
//   - WithCPUAffinity(first): pin threads round-robin starting at CPU first
//   - WithLogger(logger): structured logger for warnings and diagnostics
package thread
