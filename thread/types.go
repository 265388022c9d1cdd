package thread

// WorkItem is a closure bound to the argument it will be called with.
//
// Type parameters:
//   - A: The argument type
//   - R: The result type
type WorkItem[A any, R any] struct {
	fn  func(A) R
	arg A
}

// NewWorkItem binds fn to arg. The item is immutable afterwards.
func NewWorkItem[A any, R any](fn func(A) R, arg A) WorkItem[A, R] {
	return WorkItem[A, R]{fn: fn, arg: arg}
}

// Run calls the closure on the calling goroutine.
func (w WorkItem[A, R]) Run() R {
	return w.fn(w.arg)
}

// Stats is a snapshot of a Launcher's counters.
type Stats struct {
	Spawned      int64 // threads created
	Failed       int64 // creation attempts that failed
	Joined       int64 // successful joins
	LiveContexts int64 // contexts allocated and not yet taken by a thread or destroyed
}
