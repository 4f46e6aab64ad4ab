package cli

import (
	"context"
	"io"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/config"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/pipedemo/internal/producer"
)

// Sender runs the sender with positional args `[count] [interval_ms]`,
// writing records to stdout and diagnostics to stderr. It returns the
// process exit code.
func Sender(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rt := setup("sender", stderr)
	a := config.ParseSenderArgs(args)

	p := producer.New(interruptibleOutput(ctx, stdout), rt.logger, producer.WithMetrics(rt.metrics))
	_, err := p.Run(ctx, producer.Config{
		Count:    a.Count,
		Interval: a.Interval(),
	})
	return rt.finish(ctx, monitoring.StageSender, err)
}
