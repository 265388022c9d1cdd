//go:build !debug

package thread

func debugLog(string, ...any) {}
