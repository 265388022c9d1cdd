package benchmarks

import (
	"io"
	"log/slog"

	"github.com/utkarsh5026/threadme/thread"
)

// launcherConfig defines a benchmark configuration for a launcher
type launcherConfig struct {
	name string
	opts []thread.Option
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// getAllLaunchers returns every launcher flavour worth comparing
func getAllLaunchers(threads int) []launcherConfig {
	return []launcherConfig{
		{
			name: "Unpinned",
			opts: []thread.Option{thread.WithLogger(quiet)},
		},
		{
			name: "Pinned",
			opts: []thread.Option{thread.WithLogger(quiet), thread.WithCPUAffinity(0)},
		},
		{
			name: "Limited",
			opts: []thread.Option{thread.WithLogger(quiet), thread.WithThreadLimit(threads)},
		},
	}
}

// cpuBoundWork simulates a CPU-intensive closure
func cpuBoundWork(iterations int) func(int) int {
	return func(task int) int {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		return result
	}
}

func argsUpTo(n int) []int {
	args := make([]int, n)
	for i := range args {
		args[i] = i
	}
	return args
}
