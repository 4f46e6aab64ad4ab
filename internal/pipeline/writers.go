package pipeline

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// syncWriter serializes writes from several child processes. Files are
// returned unwrapped so exec hands the descriptor straight to the children.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) io.Writer {
	if w == nil {
		return nil
	}
	if f, ok := w.(*os.File); ok {
		return f
	}
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// lineCounter forwards everything to w and counts newline bytes.
type lineCounter struct {
	w     io.Writer
	lines atomic.Uint64
}

func (c *lineCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.lines.Add(uint64(bytes.Count(p[:n], []byte{'\n'})))
	return n, err
}

// Lines returns the number of complete lines forwarded so far.
func (c *lineCounter) Lines() uint64 {
	return c.lines.Load()
}
