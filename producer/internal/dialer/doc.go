// Package dialer connects the producer to the consumer's listening socket,
// retrying refused connections at a fixed interval up to a bounded attempt
// budget. Each attempt uses a fresh socket; a socket from a failed attempt
// is never reused.
package dialer
