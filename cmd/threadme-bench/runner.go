package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/utkarsh5026/threadme/thread"
	"golang.org/x/sync/errgroup"
)

// scenarioResult holds the measurements for one scenario
type scenarioResult struct {
	Name       string
	Operations int
	Failures   int
	TotalTime  time.Duration
}

// PerOp returns the mean latency of one operation.
func (r scenarioResult) PerOp() time.Duration {
	if r.Operations == 0 {
		return 0
	}
	return r.TotalTime / time.Duration(r.Operations)
}

// OpsPerSec returns the throughput of the scenario.
func (r scenarioResult) OpsPerSec() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Operations) / r.TotalTime.Seconds()
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// work is the closure the spawn scenarios run on every thread.
var work = func(x int) int { return x * 2 }

func launcherFor(cfg benchConfig) *thread.Launcher {
	opts := []thread.Option{thread.WithLogger(quiet)}
	if cfg.PinCPUs {
		opts = append(opts, thread.WithCPUAffinity(0))
	}
	if cfg.ThreadLimit > 0 {
		opts = append(opts, thread.WithThreadLimit(cfg.ThreadLimit))
	}
	return thread.NewLauncher(opts...)
}

// runSpawnJoin spawns and joins cfg.Threads threads one at a time, per round.
func runSpawnJoin(cfg benchConfig, bar *progressbar.ProgressBar) scenarioResult {
	l := launcherFor(cfg)
	res := scenarioResult{Name: "spawn+join"}

	start := time.Now()
	for range cfg.Rounds {
		for i := range cfg.Threads {
			h, err := thread.SpawnOn(l, work, i)
			if err != nil {
				res.Failures++
				continue
			}
			if _, err := h.Join(); err != nil {
				res.Failures++
				continue
			}
			res.Operations++
		}
		tick(bar)
	}
	res.TotalTime = time.Since(start)
	return res
}

// runSpawnAll spawns cfg.Threads threads at once and then joins them. Only
// threads that both started and joined cleanly count as operations.
func runSpawnAll(cfg benchConfig, bar *progressbar.ProgressBar) scenarioResult {
	l := launcherFor(cfg)
	res := scenarioResult{Name: "spawn-all+join"}

	args := make([]int, cfg.Threads)
	for i := range args {
		args[i] = i
	}

	start := time.Now()
	for range cfg.Rounds {
		handles, _ := thread.SpawnAll(l, work, args)
		res.Failures += len(args) - len(handles)
		for _, h := range handles {
			if _, err := h.Join(); err != nil {
				res.Failures++
				continue
			}
			res.Operations++
		}
		tick(bar)
	}
	res.TotalTime = time.Since(start)
	return res
}

// runBarrier drives cfg.Participants threads through cfg.Generations
// barrier generations.
func runBarrier(cfg benchConfig, bar *progressbar.ProgressBar) scenarioResult {
	l := launcherFor(benchConfig{PinCPUs: cfg.PinCPUs})
	res := scenarioResult{Name: "barrier generation"}

	b := thread.NewBarrier(cfg.Participants, thread.WithLogger(quiet))
	defer b.Close()

	participant := func(int) int {
		serial := 0
		for range cfg.Generations {
			if b.Wait() {
				serial++
			}
		}
		return serial
	}

	args := make([]int, cfg.Participants)
	for i := range args {
		args[i] = i
	}

	start := time.Now()
	handles, err := thread.SpawnAll(l, participant, args)
	if err != nil {
		res.Failures++
		// Stand in for the participants that never started, otherwise the
		// started ones stay parked and Close fails with EBUSY.
		var g errgroup.Group
		for range len(args) - len(handles) {
			g.Go(func() error {
				participant(0)
				return nil
			})
		}
		_, _ = thread.JoinAll(handles)
		_ = g.Wait()
		tick(bar)
		return res
	}

	serials, err := thread.JoinAll(handles)
	res.TotalTime = time.Since(start)
	if err != nil {
		res.Failures++
	}
	for _, s := range serials {
		res.Operations += s
	}
	tick(bar)
	return res
}

func tick(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
