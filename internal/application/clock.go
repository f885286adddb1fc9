package application

import "time"

// Clock supplies the current instant to time-dependent rules (the comment
// edit window), so use cases stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
