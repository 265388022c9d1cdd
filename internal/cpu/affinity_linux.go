//go:build linux

package cpu

import (
	"runtime"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	processCPUs     []int
	processCPUsErr  error
	processCPUsOnce sync.Once
)

// AllowedCPUs returns the CPUs in the process's affinity mask, read once
// from the main thread so later pinning cannot shrink it.
func AllowedCPUs() ([]int, error) {
	processCPUsOnce.Do(func() {
		var mask unix.CPUSet
		if err := unix.SchedGetaffinity(unix.Getpid(), &mask); err != nil {
			processCPUsErr = err
			return
		}
		processCPUs = cpusIn(&mask)
	})
	return processCPUs, processCPUsErr
}

// CurrentCPUs returns the CPUs the calling OS thread may run on.
func CurrentCPUs() ([]int, error) {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil, err
	}
	return cpusIn(&mask), nil
}

func cpusIn(mask *unix.CPUSet) []int {
	n := mask.Count()
	cpus := make([]int, 0, n)
	for i := 0; len(cpus) < n; i++ {
		if mask.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus
}

// pinToCore pins the current OS thread to the slot-th allowed CPU, wrapping
// around the allowed set. Must be called after runtime.LockOSThread().
func pinToCore(slot int) error {
	cpus, err := AllowedCPUs()
	if err != nil {
		return err
	}
	if len(cpus) == 0 {
		return unix.EINVAL
	}
	slot = ((slot % len(cpus)) + len(cpus)) % len(cpus)

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpus[slot])

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// LockThread wires the calling goroutine to its OS thread for the rest of
// its life and, unless slot is NoAffinity, pins that thread to the slot-th
// allowed CPU. The thread is never unlocked: when the goroutine returns,
// the runtime terminates the OS thread instead of reusing it.
func LockThread(slot int) error {
	runtime.LockOSThread()
	if slot == NoAffinity {
		return nil
	}
	return pinToCore(slot)
}
