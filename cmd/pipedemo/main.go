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

	// Children get the interrupt through the context as well.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Pipeline(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
