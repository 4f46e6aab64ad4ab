package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/config"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/pipedemo/internal/pipeline"
	"go.uber.org/zap"
)

// Executables started by the pipeline runner.
const (
	SenderBinary   = "sender"
	ReceiverBinary = "receiver"
)

// Pipeline runs `sender [count] [interval_ms] | receiver [delay_ms]` from
// positional args `[count] [interval_ms] [delay_ms]`.
func Pipeline(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rt := setup("pipeline", stderr)
	a := config.ParsePipelineArgs(args)

	senderPath, err := pipeline.Resolve(SenderBinary)
	if err != nil {
		return rt.finish(ctx, monitoring.StagePipeline, err)
	}
	receiverPath, err := pipeline.Resolve(ReceiverBinary)
	if err != nil {
		return rt.finish(ctx, monitoring.StagePipeline, err)
	}

	return runPipeline(ctx, rt, a,
		pipeline.Stage{Name: SenderBinary, Path: senderPath},
		pipeline.Stage{Name: ReceiverBinary, Path: receiverPath},
		stdout, stderr,
	)
}

// runPipeline fills in the stage arguments from a and runs both stages.
func runPipeline(ctx context.Context, rt *runtime, a config.PipelineArgs, snd, rcv pipeline.Stage, stdout, stderr io.Writer) int {
	snd.Args = append(snd.Args,
		strconv.FormatUint(uint64(a.Sender.Count), 10),
		strconv.FormatUint(a.Sender.IntervalMs, 10),
	)
	rcv.Args = append(rcv.Args, strconv.FormatUint(a.Receiver.DelayMs, 10))

	res, err := pipeline.NewRunner(rt.logger, rt.metrics).Run(ctx, snd, rcv, stdout, stderr)
	if err == nil && res.Lines != uint64(a.Sender.Count) {
		rt.logger.Warn("Receiver output does not match sender count",
			zap.Uint32("sent", a.Sender.Count),
			zap.Uint64("received", res.Lines),
		)
	}
	return rt.finish(ctx, monitoring.StagePipeline, err)
}
