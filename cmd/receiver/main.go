package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/pipedemo/internal/cli"
)

func main() {
	cli.IgnoreBrokenPipe()

	// Handle graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Receiver(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
