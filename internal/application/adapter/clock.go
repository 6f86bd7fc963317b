// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts wall-clock "now" so due-date logic can be tested with
// a simulated time. All calendar comparisons in the recurring reconciler
// and the savings projector go through this interface.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}
