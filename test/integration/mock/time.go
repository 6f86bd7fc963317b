package mock

import (
	"sync"
	"time"
)

// Time is an adjustable clock injected into the test server. Until
// SetCurrentTime is called it follows the wall clock; afterwards it
// advances from the configured instant.
type Time struct {
	mu      sync.Mutex
	current time.Time
	setAt   time.Time
}

// NewTime creates a clock that tracks the wall clock.
func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime pins the clock to the given instant.
func (t *Time) SetCurrentTime(current time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = current
	t.setAt = time.Now()
}

// Now returns the configured instant plus the real time elapsed since
// it was set.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.setAt.IsZero() {
		return time.Now()
	}
	return t.current.Add(time.Since(t.setAt))
}
