package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the producer configuration.
const (
	DefaultConsumerAddr = "127.0.0.1:12345"
	DefaultInputFile    = "numbers.txt"
	DefaultWorkers      = 2
	DefaultMaxItems     = 100
	DefaultDialAttempts = 50
	DefaultDialInterval = 100 * time.Millisecond
	DefaultConsumerPath = "./consumer"
)

// Config holds the producer-side configuration parsed from the `producer:`
// section of the shared config file.
type Config struct {
	Producer ProducerConfig `yaml:"producer"`
}

// ProducerConfig holds all producer-side settings.
type ProducerConfig struct {
	// ConsumerAddr is the loopback address the consumer listens on
	// (default 127.0.0.1:12345).
	ConsumerAddr string `yaml:"consumer_addr"`

	// InputFile is the path to the whitespace-separated integer source file
	// (default numbers.txt).
	InputFile string `yaml:"input_file"`

	// Workers is the number of concurrent producer workers (default 2).
	Workers int `yaml:"workers"`

	// MaxItems caps the total number of integers read from the input file
	// across all workers (default 100).
	MaxItems int `yaml:"max_items"`

	// Dial controls the bounded connect-retry loop.
	Dial DialConfig `yaml:"dial"`

	// Launch controls how the peer consumer process is started.
	Launch LaunchConfig `yaml:"launch"`
}

// DialConfig bounds the connect-retry loop toward the consumer.
type DialConfig struct {
	// Attempts is the retry budget: the number of additional connect
	// attempts made after the first refusal (default 50).
	Attempts int `yaml:"attempts"`

	// Interval is the fixed pause between attempts (default 100ms).
	Interval time.Duration `yaml:"interval"`
}

// LaunchConfig controls the consumer subprocess.
type LaunchConfig struct {
	// Enabled starts the consumer as a managed subprocess when true
	// (default). Disable when running both binaries by hand.
	Enabled *bool `yaml:"enabled"`

	// Path is the consumer binary path (default ./consumer).
	Path string `yaml:"path"`
}

// LaunchEnabled reports whether the producer should start the consumer itself.
func (c ProducerConfig) LaunchEnabled() bool {
	if c.Launch.Enabled == nil {
		return true
	}
	return *c.Launch.Enabled
}

// Load reads and parses the config file at path, returning the producer
// configuration. Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("producer config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("producer config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("producer config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Producer: ProducerConfig{
			ConsumerAddr: DefaultConsumerAddr,
			InputFile:    DefaultInputFile,
			Workers:      DefaultWorkers,
			MaxItems:     DefaultMaxItems,
			Dial: DialConfig{
				Attempts: DefaultDialAttempts,
				Interval: DefaultDialInterval,
			},
			Launch: LaunchConfig{
				Path: DefaultConsumerPath,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	p := cfg.Producer
	if p.ConsumerAddr == "" {
		return fmt.Errorf("producer.consumer_addr must not be empty")
	}
	if p.InputFile == "" {
		return fmt.Errorf("producer.input_file must not be empty")
	}
	if p.Workers < 1 {
		return fmt.Errorf("producer.workers %d must be at least 1", p.Workers)
	}
	if p.MaxItems < 1 {
		return fmt.Errorf("producer.max_items %d must be at least 1", p.MaxItems)
	}
	if p.Dial.Attempts < 1 {
		return fmt.Errorf("producer.dial.attempts %d must be at least 1", p.Dial.Attempts)
	}
	if p.Dial.Interval <= 0 {
		return fmt.Errorf("producer.dial.interval must be positive")
	}
	if p.LaunchEnabled() && p.Launch.Path == "" {
		return fmt.Errorf("producer.launch.path must not be empty when launch is enabled")
	}
	return nil
}
