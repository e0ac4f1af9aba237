package pool

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/numpipe/numpipe/consumer/internal/buffer"
	"github.com/numpipe/numpipe/pkg/wire"
)

// Cause records why the pool stopped ingesting.
type Cause int

const (
	// CauseEOF means the producer closed the connection cleanly.
	CauseEOF Cause = iota
	// CauseFull means every buffer slot was written.
	CauseFull
	// CauseError means the last worker to stop hit an I/O or protocol error.
	CauseError
)

func (c Cause) String() string {
	switch c {
	case CauseEOF:
		return "clean eof"
	case CauseFull:
		return "buffer full"
	default:
		return "error"
	}
}

// Pool is the consumer worker set. All workers share one buffer and one
// connection; the buffer lock serializes the receive+insert step.
type Pool struct {
	workers int
	buf     *buffer.Buffer
	conn    io.Reader

	causes chan Cause
}

// New creates a Pool of the given size over buf and conn.
func New(workers int, buf *buffer.Buffer, conn io.Reader) *Pool {
	return &Pool{
		workers: workers,
		buf:     buf,
		conn:    conn,
		causes:  make(chan Cause, workers),
	}
}

// Run starts every worker and blocks until all of them have returned.
// It reports the first worker failure, if any. A short frame or receive
// fault stops only the worker that observed it; the others keep draining
// until their own stop condition.
func (p *Pool) Run() error {
	var g errgroup.Group
	for i := 1; i <= p.workers; i++ {
		id := i
		g.Go(func() error { return p.work(id) })
	}
	return g.Wait()
}

// Stopped returns the termination cause of each worker, in the order the
// workers finished. Valid after Run returns.
func (p *Pool) Stopped() []Cause {
	out := make([]Cause, 0, p.workers)
	for {
		select {
		case c := <-p.causes:
			out = append(out, c)
		default:
			return out
		}
	}
}

// work ingests frames until the buffer is full, the stream ends, or a
// receive fails. Full buffer and clean EOF are normal termination.
func (p *Pool) work(id int) error {
	pid := os.Getpid()
	recv := func() (int32, error) { return wire.Read(p.conn) }

	for {
		v, idx, err := p.buf.Ingest(recv)
		switch {
		case errors.Is(err, buffer.ErrFull):
			slog.Debug("consumer worker done: buffer full", "pid", pid, "worker", id)
			p.causes <- CauseFull
			return nil
		case err == io.EOF:
			slog.Debug("consumer worker done: stream closed", "pid", pid, "worker", id)
			p.causes <- CauseEOF
			return nil
		case err != nil:
			p.causes <- CauseError
			return fmt.Errorf("consumer worker %d: %w", id, err)
		}

		slog.Info("inserted data element", "pid", pid, "worker", id, "value", v, "index", idx)
	}
}
