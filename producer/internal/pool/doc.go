// Package pool runs the producer's fixed-size worker set. Each worker
// independently claims integers from the shared source and writes them to
// the connection; a send failure stops only the worker that hit it.
package pool
