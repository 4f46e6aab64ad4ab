package producer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/logging"
	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/pipedemo/internal/record"
	"github.com/GriffinCanCode/pipedemo/internal/shared/pace"
)

// ErrWrite wraps any failure to deliver a record to the output stream.
var ErrWrite = errors.New("failed to write record")

// Config fixes the shape of one run.
type Config struct {
	Count    uint32
	Interval time.Duration
}

// Producer writes numbered, timestamped records to a stream.
type Producer struct {
	out     *bufio.Writer
	logger  *logging.Logger
	metrics *monitoring.Metrics
	now     func() time.Time
	sleep   pace.SleepFunc
}

// Option configures a Producer.
type Option func(*Producer)

// WithClock replaces the wall clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Producer) { p.now = now }
}

// WithSleeper replaces the pause between records.
func WithSleeper(sleep pace.SleepFunc) Option {
	return func(p *Producer) { p.sleep = sleep }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(p *Producer) { p.metrics = m }
}

// New creates a producer writing records to out and diagnostics to logger.
func New(out io.Writer, logger *logging.Logger, opts ...Option) *Producer {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Producer{
		out:    bufio.NewWriter(out),
		logger: logger,
		now:    time.Now,
		sleep:  pace.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run emits cfg.Count records, flushing each one before logging it and
// pausing cfg.Interval. It returns the number of records delivered.
//
// A write error aborts the run immediately. Cancelling ctx interrupts the
// current pause and returns ctx.Err().
func (p *Producer) Run(ctx context.Context, cfg Config) (uint32, error) {
	p.logger.Info("Producer starting",
		zap.Uint32("count", cfg.Count),
		zap.Duration("interval", cfg.Interval),
	)

	var sent uint32
	for n := uint64(1); n <= uint64(cfg.Count); n++ {
		i := uint32(n)
		rec := record.New(i, p.now())

		if err := p.emit(rec); err != nil {
			p.metrics.RecordStreamError(monitoring.StageSender, monitoring.OpWrite)
			return sent, fmt.Errorf("%w: item #%d: %w", ErrWrite, i, err)
		}
		sent++
		p.metrics.IncSent()
		p.logger.Info("Producer: sent item", zap.Uint32("item", i))

		if err := p.sleep(ctx, cfg.Interval); err != nil {
			return sent, err
		}
	}

	p.logger.Info("Producer: finished sending all items", zap.Uint32("sent", sent))
	return sent, nil
}

func (p *Producer) emit(rec record.Record) error {
	timer := monitoring.NewTimer(p.metrics, monitoring.StageSender)
	defer timer.Stop()

	if _, err := p.out.WriteString(rec.String()); err != nil {
		return err
	}
	if err := p.out.WriteByte('\n'); err != nil {
		return err
	}
	return p.out.Flush()
}
