package dialer

import (
	"context"
	"errors"
	"net"
	"sync"
	"syscall"
	"testing"
	"time"
)

// refuseDial simulates a listener that comes up after refuseN attempts.
type refuseDial struct {
	mu       sync.Mutex
	calls    int
	refuseN  int
	finalErr error // returned once refuseN is exhausted, nil = succeed
	conn     net.Conn
}

func (r *refuseDial) dial(_ context.Context, _ string) (net.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.refuseN {
		return nil, syscall.ECONNREFUSED
	}
	if r.finalErr != nil {
		return nil, r.finalErr
	}
	return r.conn, nil
}

func (r *refuseDial) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestDialer(attempts int, fn func(context.Context, string) (net.Conn, error)) *Dialer {
	d := New("127.0.0.1:0", attempts, time.Millisecond)
	d.dialFn = fn
	return d
}

func TestDial_LateListener(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	rd := &refuseDial{refuseN: 5, conn: client}
	d := newTestDialer(50, rd.dial)

	conn, err := d.Dial(context.Background())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if got := rd.callCount(); got != 6 {
		t.Errorf("attempts: got %d, want 6", got)
	}
}

func TestDial_ExhaustsBudget(t *testing.T) {
	rd := &refuseDial{refuseN: 1000}
	d := newTestDialer(3, rd.dial)

	_, err := d.Dial(context.Background())
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("Dial: got %v, want ErrRetriesExhausted", err)
	}
	// First attempt plus the full retry budget.
	if got := rd.callCount(); got != 4 {
		t.Errorf("attempts: got %d, want 4", got)
	}
}

func TestDial_NonRetryableFailsFast(t *testing.T) {
	rd := &refuseDial{finalErr: errors.New("address in use")}
	d := newTestDialer(50, rd.dial)

	_, err := d.Dial(context.Background())
	if err == nil {
		t.Fatal("Dial: expected error, got nil")
	}
	if errors.Is(err, ErrRetriesExhausted) {
		t.Error("Dial: non-retryable failure must not be reported as exhaustion")
	}
	if got := rd.callCount(); got != 1 {
		t.Errorf("attempts: got %d, want 1", got)
	}
}

func TestDial_ContextCancelled(t *testing.T) {
	rd := &refuseDial{refuseN: 1000}
	d := newTestDialer(1000, rd.dial)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dial(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Dial: got %v, want context.Canceled", err)
	}
}

func TestDial_RealRefusedSocket(t *testing.T) {
	// Bind and immediately close to get a port with no listener.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	d := New(addr, 2, time.Millisecond)
	if _, err := d.Dial(context.Background()); !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("Dial to dead port: got %v, want ErrRetriesExhausted", err)
	}
}

func TestRetryable(t *testing.T) {
	if !retryable(syscall.ECONNREFUSED) {
		t.Error("ECONNREFUSED should be retryable")
	}
	if !retryable(syscall.ENETUNREACH) {
		t.Error("ENETUNREACH should be retryable")
	}
	if retryable(errors.New("permission denied")) {
		t.Error("arbitrary errors should not be retryable")
	}
}
