//go:build unix

package cli

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

// IgnoreBrokenPipe turns SIGPIPE into EPIPE write errors so a vanished
// downstream reader is reported and mapped to a failure exit code instead of
// killing the process silently.
func IgnoreBrokenPipe() {
	signal.Ignore(unix.SIGPIPE)
}
