// Package launch manages the consumer peer as a subprocess with an explicit
// start/terminate/wait lifecycle. Every exit path through the producer reaps
// the child, so no zombie is left behind.
package launch
