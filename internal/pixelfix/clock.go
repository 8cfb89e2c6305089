package pixelfix

import "time"

// Clock is the timestamp source used for redraw throttling.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// StepClock advances by Step on every call to Now. The simulator uses it to
// run the loop deterministically.
type StepClock struct {
	T    time.Time
	Step time.Duration
}

func (c *StepClock) Now() time.Time {
	now := c.T
	c.T = c.T.Add(c.Step)
	return now
}
