package cli

import (
	"context"
	"io"

	"github.com/GriffinCanCode/pipedemo/internal/consumer"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/config"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
)

// Receiver runs the receiver with positional args `[delay_ms]`, reading
// records from stdin and writing processed lines to stdout.
func Receiver(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rt := setup("receiver", stderr)
	a := config.ParseReceiverArgs(args)

	c := consumer.New(interruptibleInput(ctx, stdin), interruptibleOutput(ctx, stdout), rt.logger, consumer.WithMetrics(rt.metrics))
	_, err := c.Run(ctx, consumer.Config{Delay: a.Delay()})
	return rt.finish(ctx, monitoring.StageReceiver, err)
}
