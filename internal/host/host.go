// Package host is the native thread API the thread package is built on.
//
// A Host creates and joins OS threads and manages counted rendezvous
// resources. Errors are always syscall.Errno values so callers can surface
// them as native error codes. Thread and Barrier are opaque identifiers; an
// identifier that was already consumed (joined or destroyed) is reported as
// ESRCH or EINVAL rather than being undefined.
package host

// Entry is the fixed-signature function a new thread starts in. It receives
// the opaque context handed to CreateThread and returns the thread's raw
// termination value.
type Entry func(ctx any) any

// Thread identifies a thread created by a Host.
type Thread uint64

// Barrier identifies a rendezvous resource created by a Host.
type Barrier uint64

// Host is the capability set for native threads and barriers.
type Host interface {
	// CreateThread starts a new OS thread running entry(ctx).
	CreateThread(entry Entry, ctx any) (Thread, error)

	// JoinThread blocks until t terminates and returns its raw termination
	// value. Each Thread can be joined once.
	JoinThread(t Thread) (any, error)

	// BarrierInit allocates a rendezvous resource for count participants.
	BarrierInit(count int) (Barrier, error)

	// BarrierWait blocks until count participants of the current generation
	// arrived. Exactly one caller per generation gets serial == true.
	BarrierWait(b Barrier) (serial bool, err error)

	// BarrierDestroy releases the resource. It fails with EBUSY while
	// participants are parked in BarrierWait.
	BarrierDestroy(b Barrier) error
}
