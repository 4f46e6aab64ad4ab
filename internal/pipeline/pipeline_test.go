package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/pipedemo/internal/infrastructure/monitoring"
)

func TestRunConnectsStages(t *testing.T) {
	var out, diag bytes.Buffer

	res, err := NewRunner(nil, nil).Run(context.Background(),
		stage("sender", "emit", "a", "b", "c"),
		stage("receiver", "cat"),
		&out, &diag,
	)

	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", out.String())
	assert.Equal(t, uint64(3), res.Lines)
	assert.Equal(t, 0, res.Sender.ExitCode)
	assert.Equal(t, 0, res.Receiver.ExitCode)
	assert.NotZero(t, res.Sender.PID)
	assert.NotEqual(t, res.Sender.PID, res.Receiver.PID)
	assert.Contains(t, diag.String(), "emit done")
	assert.Contains(t, diag.String(), "cat done")
}

func TestRunEmptyStream(t *testing.T) {
	var out bytes.Buffer

	res, err := NewRunner(nil, nil).Run(context.Background(),
		stage("sender", "emit"),
		stage("receiver", "cat"),
		&out, nil,
	)

	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, res.Lines)
}

func TestRunReportsStageFailure(t *testing.T) {
	var out bytes.Buffer
	metrics := monitoring.NewMetrics()

	res, err := NewRunner(nil, metrics).Run(context.Background(),
		stage("sender", "fail"),
		stage("receiver", "cat"),
		&out, nil,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStage)
	assert.Contains(t, err.Error(), "sender exited with code 3")
	assert.Equal(t, 3, res.Sender.ExitCode)
	assert.Equal(t, 0, res.Receiver.ExitCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StreamErrors.WithLabelValues(monitoring.StagePipeline, monitoring.OpChild)))
}

func TestRunCombinesErrors(t *testing.T) {
	res, err := NewRunner(nil, nil).Run(context.Background(),
		stage("sender", "fail"),
		stage("receiver", "fail"),
		nil, nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sender exited")
	assert.Contains(t, err.Error(), "receiver exited")
	assert.Equal(t, 3, res.Receiver.ExitCode)
}

func TestRunStartFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	res, err := NewRunner(nil, nil).Run(context.Background(),
		Stage{Name: "sender", Path: missing},
		stage("receiver", "cat"),
		nil, nil,
	)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrStage)

	res, err = NewRunner(nil, nil).Run(context.Background(),
		stage("sender", "emit", "x"),
		Stage{Name: "receiver", Path: missing},
		nil, nil,
	)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrStage)
}

func TestRunCancelInterruptsChildren(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("os.Interrupt cannot be delivered to child processes on windows")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewRunner(nil, nil).Run(ctx,
		stage("sender", "hang"),
		stage("receiver", "cat"),
		nil, nil,
	)

	require.Error(t, err)
	assert.Less(t, time.Since(start), shutdownGrace)
}

func TestRunCleanShutdownAfterCancelIsNotAFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("os.Interrupt cannot be delivered to child processes on windows")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	diag := &readyWriter{want: 2, ready: make(chan struct{})}
	go func() {
		select {
		case <-diag.ready:
		case <-time.After(shutdownGrace):
		}
		cancel()
	}()

	res, err := NewRunner(nil, nil).Run(ctx,
		stage("sender", "graceful"),
		stage("receiver", "graceful"),
		nil, diag,
	)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sender.ExitCode)
	assert.Equal(t, 0, res.Receiver.ExitCode)
	assert.NoError(t, res.Sender.Err)
	assert.NoError(t, res.Receiver.Err)
}

func TestResolve(t *testing.T) {
	_, err := Resolve("pipedemo-definitely-missing")
	assert.Error(t, err)

	if runtime.GOOS == "windows" {
		return
	}
	path, err := Resolve("sh")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
}

func TestResolvePrefersSibling(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	path, err := Resolve(filepath.Base(self))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(self), filepath.Base(self)), path)
}

func TestLineCounter(t *testing.T) {
	var buf bytes.Buffer
	c := &lineCounter{w: &buf}

	_, _ = c.Write([]byte("a\nb"))
	_, _ = c.Write([]byte("c\n\n"))

	assert.Equal(t, uint64(3), c.Lines())
	assert.Equal(t, "a\nbc\n\n", buf.String())
}

func TestLineCounterShortWrite(t *testing.T) {
	c := &lineCounter{w: shortWriter{n: 2}}

	n, err := c.Write([]byte("a\nb\n"))

	assert.Equal(t, 2, n)
	assert.Error(t, err)
	assert.Equal(t, uint64(1), c.Lines())
}

func TestNewSyncWriter(t *testing.T) {
	assert.Nil(t, newSyncWriter(nil))
	assert.Same(t, os.Stderr, newSyncWriter(os.Stderr))

	var buf bytes.Buffer
	w := newSyncWriter(&buf)
	_, ok := w.(*syncWriter)
	assert.True(t, ok)
}

type shortWriter struct{ n int }

func (w shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		return w.n, errors.New("short write")
	}
	return len(p), nil
}

// readyWriter closes ready once it has seen want "ready" lines.
type readyWriter struct {
	mu    sync.Mutex
	seen  int
	want  int
	ready chan struct{}
}

func (w *readyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := w.seen
	w.seen += bytes.Count(p, []byte("ready\n"))
	if before < w.want && w.seen >= w.want {
		close(w.ready)
	}
	return len(p), nil
}
