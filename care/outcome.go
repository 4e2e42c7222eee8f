package care

import (
	"fmt"
	"time"
)

// ScheduleResult is the status of one best-effort reminder insert.
type ScheduleResult struct {
	Type    string
	Date    time.Time
	Created bool // false when skipped or failed
	Skipped bool // an existing reminder already covered the day window
	Err     error
}

func (r ScheduleResult) String() string {
	day := r.Date.Format("2006-01-02")
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s reminder for %s failed: %v", r.Type, day, r.Err)
	case r.Skipped:
		return fmt.Sprintf("%s reminder for %s skipped, already present", r.Type, day)
	default:
		return fmt.Sprintf("%s reminder created for %s", r.Type, day)
	}
}

// ActionOutcome reports what the secondary steps of a care action did.
// The primary plant mutation either succeeded or the operation returned an
// error; the sweep count and the roll-forward status live here so callers
// can log partial failure without unwinding the committed write.
type ActionOutcome struct {
	Closed int64 // pending reminders completed by the sweep
	Next   ScheduleResult
}

func (o ActionOutcome) String() string {
	return fmt.Sprintf("closed %d pending, %s", o.Closed, o.Next)
}
