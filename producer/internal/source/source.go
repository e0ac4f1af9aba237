package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Source is a concurrency-safe reader of whitespace-separated decimal
// integers with a claim ceiling. Each Next call atomically claims the next
// token: the ceiling check, the token read, and the count increment all
// happen under one lock. Network I/O on claimed values is the caller's
// business and happens outside the lock.
type Source struct {
	mu      sync.Mutex
	sc      *bufio.Scanner
	claimed int
	ceiling int
}

// New creates a Source reading from r, claiming at most ceiling items.
func New(r io.Reader, ceiling int) *Source {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Source{sc: sc, ceiling: ceiling}
}

// Next claims the next integer from the source.
//
// ok is false when the source has nothing left to claim — either the ceiling
// was reached or the underlying reader is drained. Both are normal
// termination for the calling worker. A malformed token or a read failure
// is reported through err; the value is unusable and the caller should stop.
func (s *Source) Next() (v int32, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claimed >= s.ceiling {
		return 0, false, nil
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, false, fmt.Errorf("source: read: %w", err)
		}
		return 0, false, nil // drained
	}

	n, err := strconv.ParseInt(s.sc.Text(), 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("source: token %q: %w", s.sc.Text(), err)
	}

	s.claimed++
	return int32(n), true, nil
}

// Claimed returns the number of items claimed so far.
func (s *Source) Claimed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claimed
}
