//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the current OS thread to CPU slot, wrapping around the
// logical CPU count. Must be called after runtime.LockOSThread().
func pinToCore(slot int) error {
	numCPU := runtime.NumCPU()
	cpuID := ((slot % numCPU) + numCPU) % numCPU

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1 << cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return err
	}
	return nil
}

// LockThread wires the calling goroutine to its OS thread for the rest of
// its life and, unless slot is NoAffinity, pins that thread to a core.
func LockThread(slot int) error {
	runtime.LockOSThread()
	if slot == NoAffinity {
		return nil
	}
	return pinToCore(slot)
}
