package consumer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/logging"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/pipedemo/internal/record"
	"github.com/GriffinCanCode/pipedemo/internal/shared/pace"
)

var (
	// ErrRead wraps a non-EOF failure of the input stream.
	ErrRead = errors.New("failed to read line")
	// ErrInvalidUTF8 is returned for input lines that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
	// ErrWrite wraps any failure to deliver a processed line.
	ErrWrite = errors.New("failed to write processed line")
)

// Config fixes the shape of one run.
type Config struct {
	Delay time.Duration
}

// Consumer reads lines until end of stream and forwards them processed.
type Consumer struct {
	in      *bufio.Reader
	out     *bufio.Writer
	logger  *logging.Logger
	metrics *monitoring.Metrics
	sleep   pace.SleepFunc
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithSleeper replaces the pause after each record.
func WithSleeper(sleep pace.SleepFunc) Option {
	return func(c *Consumer) { c.sleep = sleep }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Consumer) { c.metrics = m }
}

// New creates a consumer reading from in and writing to out.
func New(in io.Reader, out io.Writer, logger *logging.Logger, opts ...Option) *Consumer {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Consumer{
		in:     bufio.NewReader(in),
		out:    bufio.NewWriter(out),
		logger: logger,
		sleep:  pace.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes lines until end of stream and returns how many it handled.
// End of stream is the only normal way out; read and write errors abort.
func (c *Consumer) Run(ctx context.Context, cfg Config) (uint64, error) {
	c.logger.Info("Receiver starting", zap.Duration("delay", cfg.Delay))

	var count uint64
	for {
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.metrics.RecordStreamError(monitoring.StageReceiver, monitoring.OpRead)
			return count, err
		}

		count++
		c.logger.Info("Receiver: received item", zap.Uint64("item", count))

		if err := c.emit(record.Process(line)); err != nil {
			c.metrics.RecordStreamError(monitoring.StageReceiver, monitoring.OpWrite)
			return count, fmt.Errorf("%w: item #%d: %w", ErrWrite, count, err)
		}
		c.metrics.IncProcessed()

		if err := c.sleep(ctx, cfg.Delay); err != nil {
			return count, err
		}
	}

	c.logger.Info("Receiver: finished processing", zap.Uint64("items", count))
	return count, nil
}

// readLine returns the next line without its "\n" or "\r\n" terminator. A
// final unterminated line is still returned; io.EOF is only reported once
// nothing is left.
func (c *Consumer) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %w", ErrRead, err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}

	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	if l, ok := strings.CutSuffix(line, "\n"); ok {
		line = strings.TrimSuffix(l, "\r")
	}
	return line, nil
}

func (c *Consumer) emit(line string) error {
	timer := monitoring.NewTimer(c.metrics, monitoring.StageReceiver)
	defer timer.Stop()

	if _, err := c.out.WriteString(line); err != nil {
		return err
	}
	if err := c.out.WriteByte('\n'); err != nil {
		return err
	}
	return c.out.Flush()
}
