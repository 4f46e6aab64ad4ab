package pace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepWaits(t *testing.T) {
	start := time.Now()
	err := Sleep(context.Background(), 20*time.Millisecond)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSleepZero(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}

func TestRecorder(t *testing.T) {
	var r Recorder

	assert.NoError(t, r.Sleep(context.Background(), time.Second))
	assert.NoError(t, r.Sleep(context.Background(), 0))

	assert.Equal(t, []time.Duration{time.Second, 0}, r.Calls)
}
