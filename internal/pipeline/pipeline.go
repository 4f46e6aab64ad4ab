package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/logging"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
)

// ErrStage is wrapped by every child process failure.
var ErrStage = errors.New("stage failed")

// shutdownGrace bounds how long a child may take to exit after an interrupt.
const shutdownGrace = 5 * time.Second

// Stage describes one child process.
type Stage struct {
	Name string
	Path string
	Args []string
	Env  []string // nil inherits the parent environment
}

// StageResult is the outcome of one child process.
type StageResult struct {
	Name     string
	PID      int
	ExitCode int
	Duration time.Duration
	Err      error
}

// Result is the outcome of a pipeline run.
type Result struct {
	Sender   StageResult
	Receiver StageResult
	// Lines is the number of lines the receiver wrote to stdout.
	Lines uint64
}

// Runner starts a sender and a receiver connected by an OS pipe.
type Runner struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewRunner creates a pipeline runner.
func NewRunner(logger *logging.Logger, metrics *monitoring.Metrics) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{logger: logger, metrics: metrics}
}

// Run starts sender with its stdout wired to receiver's stdin, forwards the
// receiver's stdout to stdout and both stderr streams to stderr, and waits
// for both children. The returned error combines every child failure.
func (r *Runner) Run(ctx context.Context, sender, receiver Stage, stdout, stderr io.Writer) (*Result, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}

	if stdout == nil {
		stdout = io.Discard
	}
	errOut := newSyncWriter(stderr)
	counter := &lineCounter{w: stdout}

	snd := command(ctx, sender)
	snd.Stdout = pw
	snd.Stderr = errOut

	rcv := command(ctx, receiver)
	rcv.Stdin = pr
	rcv.Stdout = counter
	rcv.Stderr = errOut

	if err := snd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrStage, sender.Name, err)
	}
	sndStart := time.Now()

	if err := rcv.Start(); err != nil {
		pr.Close()
		pw.Close()
		_ = snd.Process.Kill()
		_ = snd.Wait()
		return nil, fmt.Errorf("%w: %s: %w", ErrStage, receiver.Name, err)
	}
	rcvStart := time.Now()

	// The children hold their own copies; closing ours lets EOF and EPIPE
	// propagate between them.
	pw.Close()
	pr.Close()

	r.logger.Info("Pipeline started",
		zap.String("sender", sender.Name),
		zap.Int("sender_pid", snd.Process.Pid),
		zap.String("receiver", receiver.Name),
		zap.Int("receiver_pid", rcv.Process.Pid),
	)

	res := &Result{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Sender = r.wait(sender.Name, snd, sndStart)
	}()
	go func() {
		defer wg.Done()
		res.Receiver = r.wait(receiver.Name, rcv, rcvStart)
	}()
	wg.Wait()
	res.Lines = counter.Lines()

	var runErr error
	for _, sr := range []StageResult{res.Sender, res.Receiver} {
		if sr.Err != nil {
			r.metrics.RecordStreamError(monitoring.StagePipeline, monitoring.OpChild)
			runErr = multierr.Append(runErr, fmt.Errorf("%w: %s exited with code %d: %w", ErrStage, sr.Name, sr.ExitCode, sr.Err))
		}
	}

	r.logger.Info("Pipeline finished",
		zap.Int("sender_exit", res.Sender.ExitCode),
		zap.Duration("sender_duration", res.Sender.Duration),
		zap.Int("receiver_exit", res.Receiver.ExitCode),
		zap.Duration("receiver_duration", res.Receiver.Duration),
		zap.Uint64("lines", res.Lines),
	)
	return res, runErr
}

func (r *Runner) wait(name string, cmd *exec.Cmd, started time.Time) StageResult {
	err := cmd.Wait()
	sr := StageResult{
		Name:     name,
		PID:      cmd.Process.Pid,
		ExitCode: -1,
		Duration: time.Since(started),
		Err:      err,
	}
	if cmd.ProcessState != nil {
		sr.ExitCode = cmd.ProcessState.ExitCode()
	}
	// Wait reports the context error after an interrupt even when the child
	// shut down cleanly.
	if sr.ExitCode == 0 {
		sr.Err = nil
	}
	if err != nil {
		r.logger.Warn("Stage failed", zap.String("stage", name), zap.Int("exit_code", sr.ExitCode), zap.Error(err))
	}
	return sr
}

func command(ctx context.Context, s Stage) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Path, s.Args...)
	cmd.Env = s.Env
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = shutdownGrace
	return cmd
}

// Resolve finds the executable name next to the running binary, falling
// back to $PATH.
func Resolve(name string) (string, error) {
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s: %w", name, err)
	}
	return path, nil
}
