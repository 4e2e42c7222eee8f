package care

import "time"

// The two duplicate windows are intentionally different and intentionally
// named: plant creation and care actions dedup within the calendar day of
// the target date, while direct schedule creation guards a wider ±1 day
// band. Frequency edits apply no window at all. Each call site documents
// which one it uses.

// sameDayRange returns the [start, end) bounds of the calendar day
// containing t, in t's location.
func sameDayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// overlapRange returns the inclusive ±1 day bounds around t.
func overlapRange(t time.Time) (time.Time, time.Time) {
	return t.AddDate(0, 0, -1), t.AddDate(0, 0, 1)
}
