package clock

import "time"

// Interface represents the time source used by blocking waits and deadline
// arithmetic.  It exposes the same core functionality as the stdlib time package.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer

	// After returns a channel signaled once the given duration elapses.
	// Unlike NewTimer, the underlying timer cannot be stopped or reset.
	After(time.Duration) <-chan time.Time
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

func (sc systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}
