package care

import (
	"math"
	"time"
)

// Status is the read-time care state of a plant for one care type.
// Nothing is persisted; it is recomputed from the clock on every read.
type Status struct {
	DaysSince int  `json:"days_since"`
	NeedsCare bool `json:"needs_care"`
	DaysLeft  int  `json:"days_left"`
}

// StatusAt computes daysSince = ceil(|now-lastEvent| / 1 day),
// needsCare = daysSince >= frequency and daysLeft = max(0, frequency-daysSince).
// A future lastEvent counts its absolute distance, so a plant with a
// mis-entered timestamp can read as due early; callers accept that.
func StatusAt(lastEvent time.Time, frequency int, now time.Time) Status {
	diff := now.Sub(lastEvent)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	left := frequency - days
	if left < 0 {
		left = 0
	}
	return Status{
		DaysSince: days,
		NeedsCare: days >= frequency,
		DaysLeft:  left,
	}
}
