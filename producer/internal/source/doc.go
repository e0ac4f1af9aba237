// Package source provides the shared integer source the producer workers
// draw from. A single mutex serializes token reads and the claim counter,
// so the total number of claimed items never exceeds the configured ceiling
// regardless of how many workers pull concurrently.
package source
