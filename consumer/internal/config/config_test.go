package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	// Producer-only file — the consumer section is entirely absent.
	p := writeConfig(t, `producer:
  input_file: "numbers.txt"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Consumer.ListenAddr != DefaultListenAddr {
		t.Errorf("listen_addr: got %q, want %q", cfg.Consumer.ListenAddr, DefaultListenAddr)
	}
	if cfg.Consumer.Workers != DefaultWorkers {
		t.Errorf("workers: got %d, want %d", cfg.Consumer.Workers, DefaultWorkers)
	}
	if cfg.Consumer.Capacity != DefaultCapacity {
		t.Errorf("capacity: got %d, want %d", cfg.Consumer.Capacity, DefaultCapacity)
	}
	if cfg.Consumer.AcceptTimeout != DefaultAcceptTimeout {
		t.Errorf("accept_timeout: got %v, want %v", cfg.Consumer.AcceptTimeout, DefaultAcceptTimeout)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `consumer:
  listen_addr: "127.0.0.1:9000"
  workers: 3
  capacity: 50
  accept_timeout: 2s
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Consumer.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen_addr: got %q", cfg.Consumer.ListenAddr)
	}
	if cfg.Consumer.Workers != 3 {
		t.Errorf("workers: got %d, want 3", cfg.Consumer.Workers)
	}
	if cfg.Consumer.Capacity != 50 {
		t.Errorf("capacity: got %d, want 50", cfg.Consumer.Capacity)
	}
	if cfg.Consumer.AcceptTimeout != 2*time.Second {
		t.Errorf("accept_timeout: got %v, want 2s", cfg.Consumer.AcceptTimeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero workers", "consumer:\n  workers: 0\n"},
		{"zero capacity", "consumer:\n  capacity: 0\n"},
		{"negative timeout", "consumer:\n  accept_timeout: -5s\n"},
		{"empty addr", "consumer:\n  listen_addr: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yaml)
			if _, err := Load(p); err == nil {
				t.Errorf("Load(%s): expected error, got nil", tc.name)
			}
		})
	}
}
