//go:build !unix

package cli

// IgnoreBrokenPipe is a no-op where SIGPIPE does not exist.
func IgnoreBrokenPipe() {}
