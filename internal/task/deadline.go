package task

import (
	"time"
)

// DeadlineClock tracks elapsed time from task acceptance and exposes the
// remaining budget under two nested ceilings: a stage ceiling bounding
// the generate/publish pipeline and a total ceiling bounding everything
// including notification. The gap between the two is the buffer reserved
// for the notification stage.
type DeadlineClock struct {
	start time.Time
	total time.Duration
	stage time.Duration
	now   func() time.Time
}

// NewDeadlineClock starts a clock with the given ceilings. The stage
// ceiling must be strictly smaller than the total ceiling; callers
// enforce that at config validation time.
func NewDeadlineClock(total, stage time.Duration) *DeadlineClock {
	return newDeadlineClockAt(total, stage, time.Now)
}

// newDeadlineClockAt injects the time source, for tests.
func newDeadlineClockAt(total, stage time.Duration, now func() time.Time) *DeadlineClock {
	return &DeadlineClock{
		start: now(),
		total: total,
		stage: stage,
		now:   now,
	}
}

// Elapsed returns the time since acceptance.
func (c *DeadlineClock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// StageRemaining returns the budget left under the stage ceiling.
// Never negative.
func (c *DeadlineClock) StageRemaining() time.Duration {
	return remaining(c.stage, c.Elapsed())
}

// TotalRemaining returns the budget left under the total ceiling.
// Never negative.
func (c *DeadlineClock) TotalRemaining() time.Duration {
	return remaining(c.total, c.Elapsed())
}

// TotalExceeded reports whether the total ceiling has passed.
func (c *DeadlineClock) TotalExceeded() bool {
	return c.Elapsed() > c.total
}

func remaining(ceiling, elapsed time.Duration) time.Duration {
	if elapsed >= ceiling {
		return 0
	}
	return ceiling - elapsed
}
