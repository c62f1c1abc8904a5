//go:build !assert

package debug

// Assert will panic with msg if cond is false when the assert build tag is set.
func Assert(cond bool, msg interface{}) {}
