package care

import "time"

// Clock supplies "now" to the lifecycle operations so tests can pin it.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }
