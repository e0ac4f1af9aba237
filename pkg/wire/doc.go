// Package wire defines the frame codec shared by the producer and consumer
// binaries: one signed 32-bit integer per frame, big-endian, no header and
// no length prefix. End of stream is signalled only by the peer closing the
// connection.
package wire
