//go:build debug

package thread

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// tracer records lifecycle events (spawn, take, join) in debug builds.
type tracer struct {
	mu  sync.Mutex
	out *log.Logger
}

var trace = &tracer{
	out: log.New(os.Stderr, "threadme ", log.Lmicroseconds|log.Lshortfile|log.Lmsgprefix),
}

// redirect points the tracer at w and returns the previous writer.
func (tr *tracer) redirect(w io.Writer) io.Writer {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	prev := tr.out.Writer()
	tr.out.SetOutput(w)
	return prev
}

func debugLog(format string, args ...any) {
	trace.mu.Lock()
	defer trace.mu.Unlock()
	// depth 2 reports the caller of debugLog.
	_ = trace.out.Output(2, "trace: "+fmt.Sprintf(format, args...))
}
