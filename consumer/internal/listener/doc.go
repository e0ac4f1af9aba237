// Package listener binds the consumer's loopback endpoint and accepts the
// single producer connection under a deadline. A producer that never shows
// up is a normal outcome, distinguished from socket faults by ErrNoPeer.
package listener
