// Package pool runs the consumer's fixed-size worker set. Each worker
// loops the buffer's ingest step — capacity check, locked receive, append —
// until the buffer fills or the producer closes the stream.
package pool
