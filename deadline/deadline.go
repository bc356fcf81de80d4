package deadline

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrInvalidTimeout is returned when a timeout is negative, NaN, infinite,
	// or too large to represent as a time.Duration.
	ErrInvalidTimeout = errors.New("timeouts must be finite and nonnegative")
)

const nanosPerSecond = int64(time.Second)

// maxSeconds is the largest whole-second value representable by a time.Duration.
const maxSeconds = math.MaxInt64 / nanosPerSecond

// Deadline is an absolute wall-clock instant, expressed as seconds and
// nanoseconds since the Unix epoch.  The nanosecond component is always in
// the range [0, 1e9).  A Deadline is immutable once computed.
type Deadline struct {
	Sec  int64
	Nsec int32
}

// At computes the wall-clock deadline for a relative timeout captured at now.
// The integer-second and nanosecond components are summed separately, with
// overflow from the nanosecond sum carried into the seconds.  A negative
// timeout is treated as zero, yielding a deadline equal to now.
func At(now time.Time, timeout time.Duration) Deadline {
	if timeout < 0 {
		timeout = 0
	}

	var (
		sec  = now.Unix() + int64(timeout/time.Second)
		nsec = int64(now.Nanosecond()) + int64(timeout%time.Second)
	)

	if nsec >= nanosPerSecond {
		sec++
		nsec -= nanosPerSecond
	}

	return Deadline{Sec: sec, Nsec: int32(nsec)}
}

// Time returns this deadline as a time.Time.  The result carries no
// monotonic clock reading.
func (d Deadline) Time() time.Time {
	return time.Unix(d.Sec, int64(d.Nsec))
}

// Remaining returns the duration left until this deadline as observed at now,
// clamped at zero.  An expired deadline always yields an immediate wait
// rather than a negative one.
func (d Deadline) Remaining(now time.Time) time.Duration {
	if r := d.Time().Sub(now); r > 0 {
		return r
	}

	return 0
}

// Expires computes the monotonic-clock deadline for a relative timeout
// captured at now.  The returned time retains now's monotonic reading, which
// makes it safe to arm timers against even across wall-clock adjustments.
// A negative timeout is treated as zero.
func Expires(now time.Time, timeout time.Duration) time.Time {
	if timeout < 0 {
		timeout = 0
	}

	return now.Add(timeout)
}

// ParseSeconds converts a fractional count of seconds into a time.Duration.
// The whole-second and sub-second parts are converted separately and combined
// with integer arithmetic.  Negative, NaN, infinite, and overflowing values
// are rejected with ErrInvalidTimeout.
func ParseSeconds(v float64) (time.Duration, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidTimeout
	}

	sec, frac := math.Modf(v)
	if sec >= float64(maxSeconds) {
		return 0, ErrInvalidTimeout
	}

	return time.Duration(int64(sec))*time.Second +
		time.Duration(math.Round(frac*float64(nanosPerSecond))), nil
}
