package monitoring

import "time"

// Timer measures one record write
type Timer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, stage string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		stage:   stage,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop() {
	t.metrics.ObserveWrite(t.stage, time.Since(t.start))
}
