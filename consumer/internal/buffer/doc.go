// Package buffer holds the consumer's fixed-capacity result buffer. One
// mutex guards the capacity check, the network receive, and the append, so
// exactly one integer is ever in flight from the connection into the buffer
// at a time.
package buffer
