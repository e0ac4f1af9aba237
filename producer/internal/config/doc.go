// Package config loads the producer-side configuration from the shared
// pipeline config file. Only the `producer:` section is read; the
// `consumer:` key in the same file is ignored.
package config
