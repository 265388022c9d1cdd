// Package cpu binds goroutines to dedicated OS threads.
package cpu

import "runtime"

// NoAffinity leaves the locked thread free to run on any CPU.
const NoAffinity = -1

// NumCPU returns the number of logical CPUs available.
func NumCPU() int {
	return runtime.NumCPU()
}
