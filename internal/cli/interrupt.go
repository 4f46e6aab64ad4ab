package cli

import (
	"context"
	"io"
	"os"
)

// A descriptor inherited from the parent shell is usually in blocking mode,
// and closing it does not wake a read or write already waiting on it. For
// files, each call therefore runs on its own goroutine and is abandoned when
// ctx is done; the process exits shortly after, taking the goroutine with it.

type ioResult struct {
	n   int
	err error
}

type interruptibleReader struct {
	ctx context.Context
	r   io.Reader
}

func (ir *interruptibleReader) Read(p []byte) (int, error) {
	if err := ir.ctx.Err(); err != nil {
		return 0, err
	}

	// The abandoned call must not write into p after we return.
	buf := make([]byte, len(p))
	done := make(chan ioResult, 1)
	go func() {
		n, err := ir.r.Read(buf)
		done <- ioResult{n: n, err: err}
	}()

	select {
	case res := <-done:
		return copy(p, buf[:res.n]), res.err
	case <-ir.ctx.Done():
		return 0, ir.ctx.Err()
	}
}

type interruptibleWriter struct {
	ctx context.Context
	w   io.Writer
}

func (iw *interruptibleWriter) Write(p []byte) (int, error) {
	if err := iw.ctx.Err(); err != nil {
		return 0, err
	}

	buf := append([]byte(nil), p...)
	done := make(chan ioResult, 1)
	go func() {
		n, err := iw.w.Write(buf)
		done <- ioResult{n: n, err: err}
	}()

	select {
	case res := <-done:
		return res.n, res.err
	case <-iw.ctx.Done():
		return 0, iw.ctx.Err()
	}
}

// interruptibleInput returns r unchanged unless it is a file.
func interruptibleInput(ctx context.Context, r io.Reader) io.Reader {
	if _, ok := r.(*os.File); !ok {
		return r
	}
	return &interruptibleReader{ctx: ctx, r: r}
}

// interruptibleOutput returns w unchanged unless it is a file.
func interruptibleOutput(ctx context.Context, w io.Writer) io.Writer {
	if _, ok := w.(*os.File); !ok {
		return w
	}
	return &interruptibleWriter{ctx: ctx, w: w}
}
