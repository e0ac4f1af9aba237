package dialer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrRetriesExhausted is returned when every attempt in the retry budget was
// refused. Callers treat it as a fatal setup failure.
var ErrRetriesExhausted = errors.New("dialer: retries exhausted")

// Dialer opens the single connection to the consumer.
// The zero value is not usable; construct with New.
type Dialer struct {
	addr     string
	attempts int
	interval time.Duration

	clk clock.Clock
	// dialFn is the per-attempt connect; injectable for tests.
	dialFn func(ctx context.Context, addr string) (net.Conn, error)
}

// New creates a Dialer for addr with the given retry budget and fixed
// inter-attempt interval.
func New(addr string, attempts int, interval time.Duration) *Dialer {
	return &Dialer{
		addr:     addr,
		attempts: attempts,
		interval: interval,
		clk:      clock.New(),
		dialFn:   defaultDial,
	}
}

// defaultDial makes one connect attempt on a brand-new socket.
func defaultDial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// Dial attempts to connect until it succeeds, the retry budget runs out, or
// ctx is cancelled. Only "connection refused" and "network unreachable"
// failures are retried — the consumer simply hasn't bound its socket yet.
// Any other failure is returned immediately.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	retries := 0
	for {
		conn, err := d.dialFn(ctx, d.addr)
		if err == nil {
			slog.Info("dialer: connected", "addr", d.addr, "retries", retries)
			return conn, nil
		}

		if !retryable(err) {
			return nil, fmt.Errorf("dialer: connect %s: %w", d.addr, err)
		}

		retries++
		if retries > d.attempts {
			return nil, fmt.Errorf("%w after %d attempts to %s", ErrRetriesExhausted, d.attempts, d.addr)
		}

		slog.Debug("dialer: consumer not ready, will retry",
			"addr", d.addr, "retry", retries, "interval", d.interval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dialer: %w", ctx.Err())
		case <-d.clk.After(d.interval):
		}
	}
}

// retryable reports whether err means the listener is not there yet rather
// than a genuine socket fault.
func retryable(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENETUNREACH)
}
