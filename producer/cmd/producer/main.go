package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/numpipe/numpipe/producer/internal/config"
	"github.com/numpipe/numpipe/producer/internal/dialer"
	"github.com/numpipe/numpipe/producer/internal/launch"
	"github.com/numpipe/numpipe/producer/internal/pool"
	"github.com/numpipe/numpipe/producer/internal/source"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("numpipe-producer starting", "config", *configPath, "pid", os.Getpid())

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"consumer_addr", cfg.Producer.ConsumerAddr,
		"input_file", cfg.Producer.InputFile,
		"workers", cfg.Producer.Workers,
		"max_items", cfg.Producer.MaxItems,
		"launch", cfg.Producer.LaunchEnabled(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start the consumer peer first so its listener is (eventually) there to
	// dial. Every failure past this point must terminate and reap it.
	var peer *launch.Proc
	if cfg.Producer.LaunchEnabled() {
		peer, err = launch.Start(cfg.Producer.Launch.Path, "-config", *configPath)
		if err != nil {
			slog.Error("failed to launch consumer", "err", err)
			os.Exit(1)
		}
	}

	// fatal tears down the peer before exiting non-zero.
	fatal := func(msg string, err error) {
		slog.Error(msg, "err", err)
		if peer != nil {
			if terr := peer.Terminate(); terr != nil {
				slog.Error("failed to terminate consumer", "err", terr)
			}
		}
		os.Exit(1)
	}

	input, err := os.Open(cfg.Producer.InputFile)
	if err != nil {
		fatal("failed to open input file", err)
	}
	defer input.Close()

	d := dialer.New(cfg.Producer.ConsumerAddr, cfg.Producer.Dial.Attempts, cfg.Producer.Dial.Interval)
	conn, err := d.Dial(ctx)
	if err != nil {
		fatal("failed to connect to consumer", err)
	}

	src := source.New(input, cfg.Producer.MaxItems)
	workers := pool.New(cfg.Producer.Workers, src, conn)

	if err := workers.Run(); err != nil {
		// A send fault stops only the worker that hit it; whatever the pool
		// managed to transfer stands, so this is not a process failure.
		slog.Warn("worker stopped with error", "err", err)
	}

	// Closing the connection is what the consumer observes as clean EOF.
	if err := conn.Close(); err != nil {
		slog.Warn("close connection", "err", err)
	}

	slog.Info("transfer finished", "sent", src.Claimed())

	if peer != nil {
		if err := peer.Wait(); err != nil {
			slog.Error("consumer exited with failure", "err", err)
			os.Exit(1)
		}
		slog.Info("consumer exited cleanly", "pid", peer.Pid())
	}
}
