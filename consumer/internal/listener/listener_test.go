package listener

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestAccept_ProducerConnects(t *testing.T) {
	addr := "127.0.0.1:0"

	// Accept on an ephemeral port is racy to dial without knowing the port,
	// so bind a fixed loopback port chosen by the kernel first.
	probe, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("probe listen: %v", err)
	}
	fixed := probe.Addr().String()
	probe.Close()

	type result struct {
		conn net.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		c, err := Accept(context.Background(), fixed, 3*time.Second)
		done <- result{c, err}
	}()

	// Dial with a few retries in case the port is rebound slowly.
	var client net.Conn
	for i := 0; i < 50; i++ {
		client, err = net.Dial("tcp", fixed)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	res := <-done
	if res.err != nil {
		t.Fatalf("Accept: %v", res.err)
	}
	res.conn.Close()
}

func TestAccept_TimesOutCleanly(t *testing.T) {
	_, err := Accept(context.Background(), "127.0.0.1:0", 50*time.Millisecond)
	if !errors.Is(err, ErrNoPeer) {
		t.Errorf("Accept with no producer: got %v, want ErrNoPeer", err)
	}
}

func TestAccept_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Accept(ctx, "127.0.0.1:0", 10*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Accept: got %v, want context.Canceled", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Accept did not unblock promptly on cancel")
	}
}

func TestAccept_BadAddress(t *testing.T) {
	_, err := Accept(context.Background(), "127.0.0.1:notaport", time.Second)
	if err == nil || errors.Is(err, ErrNoPeer) {
		t.Errorf("Accept on bad address: got %v, want a bind error", err)
	}
}
