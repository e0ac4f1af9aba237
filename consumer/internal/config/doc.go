// Package config loads the consumer-side configuration from the shared
// pipeline config file. Only the `consumer:` section is read; the
// `producer:` key in the same file is ignored.
package config
