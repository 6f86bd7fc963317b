// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/quanta/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the wall clock.
type systemClock struct{}

// NewSystemClock creates a Clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current time in UTC.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
