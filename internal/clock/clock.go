package clock

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It drives "today" defaults in the holiday tools and TTL eviction in the
// result cache.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the standard time package.
type Real struct{}

// Now returns the current local time.
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time {
	return f.Time
}
