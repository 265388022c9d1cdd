package thread

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/utkarsh5026/threadme/internal/host"
)

// exitCode is what the swapped exit hook panics with.
type exitCode int

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectFatal runs fn and checks it ends in the fatal path for op.
func expectFatal(t *testing.T, op string, fn func()) {
	t.Helper()

	var buf bytes.Buffer
	prevExit, prevDiag := exit, diagnostics
	exit = func(code int) { panic(exitCode(code)) }
	diagnostics = &buf
	defer func() { exit, diagnostics = prevExit, prevDiag }()

	defer func() {
		r := recover()
		code, ok := r.(exitCode)
		if !ok {
			t.Fatalf("expected process exit, got %v", r)
		}
		if code != 2 {
			t.Errorf("expected exit code 2, got %d", code)
		}
		if !strings.Contains(buf.String(), "barrier "+op) {
			t.Errorf("expected diagnostic for %q, got %q", op, buf.String())
		}
	}()

	fn()
}

// failingHost refuses to create threads.
type failingHost struct {
	host.Host
	err error
}

func (f failingHost) CreateThread(host.Entry, any) (host.Thread, error) {
	return 0, f.err
}

// budgetHost creates the first n threads and fails the rest with EAGAIN.
type budgetHost struct {
	host.Host
	left atomic.Int64
}

func newBudgetHost(n int64) *budgetHost {
	b := &budgetHost{Host: host.NewRuntime()}
	b.left.Store(n)
	return b
}

func (b *budgetHost) CreateThread(entry host.Entry, ctx any) (host.Thread, error) {
	if b.left.Add(-1) < 0 {
		return 0, syscall.EAGAIN
	}
	return b.Host.CreateThread(entry, ctx)
}

// rawHost runs threads normally but hands back a fixed termination value.
type rawHost struct {
	*host.Runtime
	raw any
}

func (r rawHost) JoinThread(t host.Thread) (any, error) {
	if _, err := r.Runtime.JoinThread(t); err != nil {
		return nil, err
	}
	return r.raw, nil
}
