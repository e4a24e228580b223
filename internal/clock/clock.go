package clock

import (
	"time"
)

// Timer is a cancellation token for a scheduled action.
type Timer interface {
	// Stop cancels the action. It reports whether the action was still
	// scheduled; stopping twice is a no-op.
	Stop() bool
}

// Clock provides the current time and schedules callbacks.
// Callbacks run on goroutines owned by the implementation and must do
// their own locking.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc runs f once after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer

	// Every runs f repeatedly, once per period, until the returned Timer
	// is stopped. The first run happens one full period after registration.
	Every(period time.Duration, f func()) Timer
}
