package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/numpipe/numpipe/consumer/internal/buffer"
	"github.com/numpipe/numpipe/consumer/internal/config"
	"github.com/numpipe/numpipe/consumer/internal/listener"
	"github.com/numpipe/numpipe/consumer/internal/pool"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("numpipe-consumer starting", "config", *configPath, "pid", os.Getpid())

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"listen_addr", cfg.Consumer.ListenAddr,
		"workers", cfg.Consumer.Workers,
		"capacity", cfg.Consumer.Capacity,
		"accept_timeout", cfg.Consumer.AcceptTimeout,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := listener.Accept(ctx, cfg.Consumer.ListenAddr, cfg.Consumer.AcceptTimeout)
	if err != nil {
		if errors.Is(err, listener.ErrNoPeer) {
			// Expected when the consumer is run on its own — not a fault.
			slog.Info("no producer connected within timeout, exiting")
			return
		}
		slog.Error("failed to accept producer connection", "err", err)
		os.Exit(1)
	}

	buf := buffer.New(cfg.Consumer.Capacity)
	workers := pool.New(cfg.Consumer.Workers, buf, conn)

	if err := workers.Run(); err != nil {
		// Worker I/O faults are local to the worker that hit them; the rest
		// of the ingested data stands, so this is not a process failure.
		slog.Warn("worker stopped with error", "err", err)
	}

	if err := conn.Close(); err != nil {
		slog.Warn("close connection", "err", err)
	}

	slog.Info("numpipe-consumer done",
		"inserted", buf.Len(),
		"capacity", buf.Cap(),
		"stop_causes", causeStrings(workers.Stopped()),
	)
}

func causeStrings(causes []pool.Cause) []string {
	out := make([]string, len(causes))
	for i, c := range causes {
		out[i] = c.String()
	}
	return out
}
