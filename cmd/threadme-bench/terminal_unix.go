//go:build !windows

package main

// enableWindowsANSI does nothing outside Windows; ANSI colors just work.
func enableWindowsANSI() {}
