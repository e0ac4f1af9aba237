package pool

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/numpipe/numpipe/pkg/wire"
	"github.com/numpipe/numpipe/producer/internal/source"
)

// Pool is the producer worker set. All workers share one source and one
// connection; only the source claim is serialized, the frame write is not.
type Pool struct {
	workers int
	src     *source.Source
	conn    io.Writer
}

// New creates a Pool of the given size over src and conn.
func New(workers int, src *source.Source, conn io.Writer) *Pool {
	return &Pool{workers: workers, src: src, conn: conn}
}

// Run starts every worker and blocks until all of them have returned.
// It reports the first worker failure, if any; sibling workers are not
// cancelled by one worker's failure and always run to their own stop
// condition.
func (p *Pool) Run() error {
	var g errgroup.Group
	for i := 1; i <= p.workers; i++ {
		id := i
		g.Go(func() error { return p.work(id) })
	}
	return g.Wait()
}

// work claims and sends integers until the source is exhausted or a send
// fails. Exhaustion (ceiling reached or file drained) is normal
// termination.
func (p *Pool) work(id int) error {
	pid := os.Getpid()
	for {
		v, ok, err := p.src.Next()
		if err != nil {
			return fmt.Errorf("producer worker %d: %w", id, err)
		}
		if !ok {
			slog.Debug("producer worker done: source exhausted", "pid", pid, "worker", id)
			return nil
		}

		slog.Info("read data element", "pid", pid, "worker", id, "value", v)

		if err := wire.Write(p.conn, v); err != nil {
			return fmt.Errorf("producer worker %d: %w", id, err)
		}
	}
}
