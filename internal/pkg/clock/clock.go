// Package clock provides the system clock in the operation's reference timezone.
package clock

import "time"

// SystemClock reads the wall clock and locates it in a fixed timezone.
// One instance is shared across the application so expiry arithmetic and
// ledger timestamps never mix timezones.
type SystemClock struct {
	location *time.Location
}

// NewSystemClock creates a clock pinned to the given timezone.
// A nil location falls back to UTC.
func NewSystemClock(location *time.Location) *SystemClock {
	if location == nil {
		location = time.UTC
	}
	return &SystemClock{location: location}
}

// Now returns the current instant located in the clock's timezone.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.location)
}
