//go:build !debug

package debug

// Log prints msg to stderr when the debug build tag is set.
func Log(msg interface{}) {}
