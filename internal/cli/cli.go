package cli

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/config"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/logging"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/pipedemo/internal/shared/id"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// runtime bundles the ambient services of one process.
type runtime struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// setup loads the ambient configuration and builds the diagnostic logger.
// A broken environment never stops a run: defaults apply instead.
func setup(name string, stderr io.Writer) *runtime {
	cfg := config.LoadOrDefault()

	logger, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		logger, _ = logging.NewWithWriter(logging.DefaultConfig(), stderr)
		logger.Warn("Invalid logging configuration, using defaults", zap.Error(err))
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger.Named(name).With(zap.String("run", id.NewRunID().String())),
		metrics: monitoring.NewMetrics(),
	}
}

// newLogger writes diagnostics to stderr unless another sink is configured.
// stdout is never accepted as a sink.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*logging.Logger, error) {
	lc := logging.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
	}
	if cfg.Output == "" || cfg.Output == "stderr" {
		return logging.NewWithWriter(lc, stderr)
	}
	lc.OutputPaths = []string{cfg.Output}
	return logging.New(lc)
}

// finish exports metrics and maps err to an exit code. Errors caused by an
// interrupt are reported as the interrupt.
func (rt *runtime) finish(ctx context.Context, stage string, err error) int {
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	rt.metrics.MarkDone(stage)
	if werr := rt.metrics.WriteFile(rt.cfg.Metrics.File); werr != nil {
		rt.logger.Warn("Failed to export metrics", zap.Error(werr))
	}
	defer rt.logger.Sync() //nolint:errcheck

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		rt.logger.Warn("Interrupted")
		return ExitInterrupted
	default:
		rt.logger.Error("Fatal error", zap.Error(err))
		return ExitFailure
	}
}
