package thread

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/utkarsh5026/threadme/internal/host"
)

type point struct {
	X, Y int
}

func TestSpawnJoin(t *testing.T) {
	t.Run("doubles an int", func(t *testing.T) {
		h, err := Spawn(func(x int) int { return x * 2 }, 21)
		if Code(err) != 0 {
			t.Fatalf("expected code 0, got %d (%v)", Code(err), err)
		}

		v, err := Join(h)
		if Code(err) != 0 {
			t.Fatalf("expected code 0, got %d (%v)", Code(err), err)
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	})

	t.Run("string to length", func(t *testing.T) {
		h, err := Spawn(func(s string) int { return len(s) }, "threadme")
		if err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
		v, err := h.Join()
		if err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if v != 8 {
			t.Errorf("expected 8, got %d", v)
		}
	})

	t.Run("struct result", func(t *testing.T) {
		h, err := Spawn(func(p point) point { return point{X: p.Y, Y: p.X} }, point{X: 1, Y: 2})
		if err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
		v, err := h.Join()
		if err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if v != (point{X: 2, Y: 1}) {
			t.Errorf("expected swapped point, got %+v", v)
		}
	})

	t.Run("slice result", func(t *testing.T) {
		h, err := Spawn(func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i * i
			}
			return out
		}, 5)
		if err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
		v, err := h.Join()
		if err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if fmt.Sprint(v) != "[0 1 4 9 16]" {
			t.Errorf("unexpected squares: %v", v)
		}
	})

	t.Run("work item", func(t *testing.T) {
		item := NewWorkItem(func(p *point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }, &point{X: 3, Y: 4})
		if item.Run() != "3,4" {
			t.Fatalf("item ran to %q", item.Run())
		}

		h, err := SpawnItem(Default(), item)
		if err != nil {
			t.Fatalf("spawn failed: %v", err)
		}
		v, err := h.Join()
		if err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if v != "3,4" {
			t.Errorf("expected 3,4, got %q", v)
		}
	})
}

func TestSpawnJoin_OwnResults(t *testing.T) {
	l := NewLauncher(WithLogger(quietLogger()))

	const n = 64
	handles := make([]*Handle[int], n)
	for i := range n {
		h, err := SpawnOn(l, func(x int) int {
			time.Sleep(time.Duration(x%4) * time.Millisecond)
			return x * 10
		}, i)
		if err != nil {
			t.Fatalf("spawn %d failed: %v", i, err)
		}
		handles[i] = h
	}

	// Join in reverse order
	for i := n - 1; i >= 0; i-- {
		v, err := handles[i].Join()
		if err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
		if v != i*10 {
			t.Errorf("thread %d returned %d, want %d", i, v, i*10)
		}
	}

	stats := l.Stats()
	if stats.Spawned != n || stats.Joined != n {
		t.Errorf("expected %d spawned and joined, got %+v", n, stats)
	}
	if stats.LiveContexts != 0 {
		t.Errorf("expected no live contexts, got %d", stats.LiveContexts)
	}
}

func TestJoin_Twice(t *testing.T) {
	h, err := Spawn(func(x int) int { return x }, 1)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	if _, err := h.Join(); err != nil {
		t.Fatalf("first join failed: %v", err)
	}

	_, err = h.Join()
	if !errors.Is(err, syscall.ESRCH) {
		t.Errorf("expected ESRCH on second join, got %v", err)
	}
	if Code(err) != int(syscall.ESRCH) {
		t.Errorf("expected code %d, got %d", int(syscall.ESRCH), Code(err))
	}
}

func TestJoin_Panic(t *testing.T) {
	h, err := Spawn(func(x int) int {
		if x > 0 {
			panic("boom")
		}
		return x
	}, 1)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}

	v, err := h.Join()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if pe.Value != "boom" {
		t.Errorf("expected panic value boom, got %v", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("expected a stack trace")
	}
	if v != 0 {
		t.Errorf("expected zero value, got %d", v)
	}
	if Code(err) != -1 {
		t.Errorf("expected code -1 for a panic, got %d", Code(err))
	}
}

func TestJoin_Goexit(t *testing.T) {
	l := NewLauncher(WithLogger(quietLogger()))

	h, err := SpawnOn(l, func(x int) int {
		runtime.Goexit()
		return x
	}, 1)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}

	_, err = h.Join()
	if !errors.Is(err, ErrThreadExited) {
		t.Fatalf("expected ErrThreadExited, got %v", err)
	}
	if errors.Is(err, ErrResultType) {
		t.Error("an early exit is not a result type mismatch")
	}
	if Code(err) != -1 {
		t.Errorf("expected code -1, got %d", Code(err))
	}
	if stats := l.Stats(); stats.LiveContexts != 0 {
		t.Errorf("context leaked: %d live", stats.LiveContexts)
	}
}

func TestStats_LiveContextsWhileRunning(t *testing.T) {
	l := NewLauncher(WithLogger(quietLogger()))

	running := make(chan struct{})
	release := make(chan struct{})
	h, err := SpawnOn(l, func(struct{}) int {
		close(running)
		<-release
		return 0
	}, struct{}{})
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}

	<-running
	if live := l.Stats().LiveContexts; live != 0 {
		t.Errorf("a taken context still counts as live: %d", live)
	}

	close(release)
	if _, err := h.Join(); err != nil {
		t.Fatalf("join failed: %v", err)
	}
}

func TestJoin_ResultTypeMismatch(t *testing.T) {
	l := NewLauncher(withHost(rawHost{Runtime: host.NewRuntime(), raw: "not a box"}))

	h, err := SpawnOn(l, func(x int) int { return x }, 7)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}

	_, err = h.Join()
	if !errors.Is(err, ErrResultType) {
		t.Errorf("expected ErrResultType, got %v", err)
	}
}

func TestSpawn_CreationFailure(t *testing.T) {
	tests := []struct {
		name  string
		errno syscall.Errno
	}{
		{name: "resource exhaustion", errno: syscall.EAGAIN},
		{name: "permission", errno: syscall.EPERM},
		{name: "invalid attributes", errno: syscall.EINVAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLauncher(withHost(failingHost{err: tt.errno}), WithLogger(quietLogger()))

			ran := false
			h, err := SpawnOn(l, func(x int) int { ran = true; return x }, 1)
			if h != nil {
				t.Error("expected no handle on failure")
			}
			if Code(err) != int(tt.errno) {
				t.Errorf("expected code %d, got %d", int(tt.errno), Code(err))
			}
			if ran {
				t.Error("closure must not run when creation fails")
			}

			stats := l.Stats()
			if stats.LiveContexts != 0 {
				t.Errorf("context leaked: %d live", stats.LiveContexts)
			}
			if stats.Failed != 1 || stats.Spawned != 0 {
				t.Errorf("unexpected stats %+v", stats)
			}
		})
	}
}

func TestSpawn_NilClosure(t *testing.T) {
	var fn func(int) int
	h, err := Spawn(fn, 1)
	if h != nil {
		t.Error("expected no handle")
	}
	if !errors.Is(err, syscall.EINVAL) {
		t.Errorf("expected EINVAL, got %v", err)
	}
}

func TestSpawn_ThreadLimit(t *testing.T) {
	l := NewLauncher(WithThreadLimit(1), WithLogger(quietLogger()))

	release := make(chan struct{})
	first, err := SpawnOn(l, func(ch chan struct{}) int { <-ch; return 1 }, release)
	if err != nil {
		t.Fatalf("first spawn failed: %v", err)
	}

	second, err := SpawnOn(l, func(x int) int { return x }, 2)
	if second != nil || !errors.Is(err, syscall.EAGAIN) {
		t.Fatalf("expected EAGAIN past the limit, got handle=%v err=%v", second, err)
	}

	close(release)
	if v, err := first.Join(); err != nil || v != 1 {
		t.Fatalf("first join: v=%d err=%v", v, err)
	}

	third, err := SpawnOn(l, func(x int) int { return x }, 3)
	if err != nil {
		t.Fatalf("spawn after slot freed failed: %v", err)
	}
	if v, err := third.Join(); err != nil || v != 3 {
		t.Errorf("third join: v=%d err=%v", v, err)
	}

	if got := l.Stats().LiveContexts; got != 0 {
		t.Errorf("context leaked: %d live", got)
	}
}

func TestSpawn_RateLimit(t *testing.T) {
	l := NewLauncher(WithSpawnRate(0.001, 1), WithLogger(quietLogger()))

	h, err := SpawnOn(l, func(x int) int { return x }, 1)
	if err != nil {
		t.Fatalf("first spawn failed: %v", err)
	}
	defer h.Join()

	_, err = SpawnOn(l, func(x int) int { return x }, 2)
	if Code(err) != int(syscall.EAGAIN) {
		t.Errorf("expected EAGAIN over budget, got %v", err)
	}
}

func TestSpawn_CPUAffinity(t *testing.T) {
	l := NewLauncher(WithCPUAffinity(0))

	handles, err := SpawnAll(l, func(x int) int { return x + 1 }, []int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	results, err := JoinAll(handles)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if fmt.Sprint(results) != "[2 3 4 5]" {
		t.Errorf("unexpected results %v", results)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "errno", err: syscall.EAGAIN, want: int(syscall.EAGAIN)},
		{name: "wrapped errno", err: fmt.Errorf("spawn thread: %w", syscall.ESRCH), want: int(syscall.ESRCH)},
		{name: "other", err: errors.New("nope"), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
