package ports

import "time"

// Clock provides the current time in the system's single reference timezone.
// All expiry arithmetic and ledger timestamps go through it so tests can pin
// the clock and so the timezone is decided in exactly one place.
type Clock interface {
	// Now returns the current instant, located in the reference timezone.
	Now() time.Time
}
