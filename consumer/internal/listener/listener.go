package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"
)

// ErrNoPeer is returned when no producer connects within the accept timeout.
// Callers exit cleanly on it; it is not a socket fault.
var ErrNoPeer = errors.New("listener: no producer connected within timeout")

// Accept binds addr, waits up to timeout for exactly one connection, and
// returns it. The listening socket is closed before Accept returns — only
// one producer is ever served. Cancelling ctx closes the listener and
// unblocks the accept.
func Accept(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listener: bind %s: %w", addr, err)
	}
	defer ln.Close()

	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("listener: %s is not a TCP endpoint", addr)
	}
	if err := tcpLn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("listener: set accept deadline: %w", err)
	}

	// Unblock the accept if the process is told to shut down first.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	slog.Info("listener: waiting for producer", "addr", addr, "timeout", timeout)

	conn, err := tcpLn.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("listener: %w", ctx.Err())
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, ErrNoPeer
		}
		return nil, fmt.Errorf("listener: accept: %w", err)
	}

	slog.Info("listener: producer connected", "remote", conn.RemoteAddr())
	return conn, nil
}
