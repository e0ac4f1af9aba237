package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the consumer configuration.
const (
	DefaultListenAddr    = "127.0.0.1:12345"
	DefaultWorkers       = 2
	DefaultCapacity      = 100
	DefaultAcceptTimeout = 5 * time.Second
)

// Config holds the consumer-side configuration parsed from the `consumer:`
// section of the shared config file.
type Config struct {
	Consumer ConsumerConfig `yaml:"consumer"`
}

// ConsumerConfig holds all consumer-side settings.
type ConsumerConfig struct {
	// ListenAddr is the loopback address to bind and accept the producer on
	// (default 127.0.0.1:12345).
	ListenAddr string `yaml:"listen_addr"`

	// Workers is the number of concurrent consumer workers (default 2).
	Workers int `yaml:"workers"`

	// Capacity is the size of the in-memory result buffer; ingestion stops
	// once it is full (default 100).
	Capacity int `yaml:"capacity"`

	// AcceptTimeout bounds how long the consumer waits for the producer to
	// connect before exiting cleanly (default 5s).
	AcceptTimeout time.Duration `yaml:"accept_timeout"`
}

// Load reads and parses the config file at path, returning the consumer
// configuration. Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("consumer config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("consumer config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("consumer config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Consumer: ConsumerConfig{
			ListenAddr:    DefaultListenAddr,
			Workers:       DefaultWorkers,
			Capacity:      DefaultCapacity,
			AcceptTimeout: DefaultAcceptTimeout,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	c := cfg.Consumer
	if c.ListenAddr == "" {
		return fmt.Errorf("consumer.listen_addr must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("consumer.workers %d must be at least 1", c.Workers)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("consumer.capacity %d must be at least 1", c.Capacity)
	}
	if c.AcceptTimeout <= 0 {
		return fmt.Errorf("consumer.accept_timeout must be positive")
	}
	return nil
}
