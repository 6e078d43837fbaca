// Package clock abstracts wall-clock time so timer-driven behavior can be
// tested deterministically.
package clock

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// Real is the wall clock
type Real struct{}

// Now returns the current UTC time
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a settable clock for tests
type Fixed struct {
	Time time.Time
}

// NewFixed creates a Fixed clock starting at t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{Time: t.UTC()}
}

// Now returns the configured time
func (f *Fixed) Now() time.Time {
	return f.Time
}

// Advance moves the clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}
