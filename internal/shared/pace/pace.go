// Package pace provides the fixed pauses between records.
package pace

import (
	"context"
	"time"
)

// SleepFunc suspends the caller for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep blocks for d. It returns ctx.Err() if ctx is done first. A
// non-positive d returns immediately, still reporting a cancelled ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Recorder is a SleepFunc that never blocks and remembers every request.
// Tests use it to assert pacing without waiting.
type Recorder struct {
	Calls []time.Duration
}

// Sleep records d and reports ctx cancellation.
func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	r.Calls = append(r.Calls, d)
	return ctx.Err()
}
