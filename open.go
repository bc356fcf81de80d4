package portal

import (
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/portal-go/portal/clock"
	"github.com/portal-go/portal/deadline"
	"github.com/portal-go/portal/semaphore"
	"github.com/portal-go/portal/xmetrics"
)

// DefaultTimeout is how long Open blocks when no timeout option is supplied.
const DefaultTimeout = 24 * time.Hour

// Option is a configuration option for a single Open invocation
type Option func(*config)

type config struct {
	timeout     time.Duration
	clock       clock.Interface
	logger      log.Logger
	completions xmetrics.Adder
	failures    xmetrics.Adder
	err         error
}

// WithTimeout establishes how long Open blocks for a result.  A zero timeout
// expires immediately unless the handler closed the portal synchronously.
// A negative timeout causes Open to fail with deadline.ErrInvalidTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout < 0 {
			c.err = deadline.ErrInvalidTimeout
			return
		}

		c.timeout = timeout
	}
}

// WithTimeoutSeconds is a variant of WithTimeout accepting fractional
// seconds.  Negative, NaN, and infinite values cause Open to fail with
// deadline.ErrInvalidTimeout.
func WithTimeoutSeconds(seconds float64) Option {
	return func(c *config) {
		timeout, err := deadline.ParseSeconds(seconds)
		if err != nil {
			c.err = err
			return
		}

		c.timeout = timeout
	}
}

// WithClock establishes the time source used to bound the wait.  A nil clock
// leaves the system clock in place.
func WithClock(cl clock.Interface) Option {
	return func(c *config) {
		if cl != nil {
			c.clock = cl
		}
	}
}

// WithLogger establishes the logger used for debug events on the portal and
// its wait.  A nil logger leaves the no-op logger in place.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCompletions establishes a metric counting waits that ended with a
// delivered value.  If a nil adder is supplied, counts are discarded.
func WithCompletions(a xmetrics.Adder) Option {
	return func(c *config) {
		if a != nil {
			c.completions = a
		} else {
			c.completions = discard.NewCounter()
		}
	}
}

// WithFailures establishes a metric counting waits that ended in a timeout,
// a destroyed portal, or a user error.  If a nil adder is supplied, counts
// are discarded.
func WithFailures(a xmetrics.Adder) Option {
	return func(c *config) {
		if a != nil {
			c.failures = a
		} else {
			c.failures = discard.NewCounter()
		}
	}
}

// Open constructs a fresh portal, invokes the handler with it synchronously
// on the calling goroutine, then blocks until the portal is closed, it is
// destroyed, or the timeout elapses.
//
// The handler must only arrange the portal's eventual completion, typically
// by handing it to another goroutine or registering it with a callback; if
// it blocked on the result itself, Open would deadlock.
//
// Open returns the closed value, the closed error verbatim, ErrNotClosed if
// the portal was destroyed without being closed, or ErrTimedOut once the
// timeout passes.  After a timeout, any straggling close is a harmless no-op.
func Open[T any](handler func(*Portal[T]), options ...Option) (T, error) {
	var zero T

	cfg := config{
		timeout:     DefaultTimeout,
		clock:       clock.System(),
		logger:      log.NewNopLogger(),
		completions: discard.NewCounter(),
		failures:    discard.NewCounter(),
	}

	for _, o := range options {
		o(&cfg)
	}

	if cfg.err != nil {
		return zero, cfg.err
	}

	p := &Portal[T]{
		sem:    semaphore.New(0, semaphore.WithClock(cfg.clock)),
		logger: cfg.logger,
	}

	handler(p)

	d := deadline.At(cfg.clock.Now(), cfg.timeout)
	if err := p.sem.WaitUntil(d); err != nil {
		cfg.failures.Add(1.0)
		level.Debug(cfg.logger).Log("msg", "portal timed out", "timeout", cfg.timeout)
		return zero, ErrTimedOut
	}

	switch r := p.load(); {
	case r == nil:
		cfg.failures.Add(1.0)
		return zero, ErrNotClosed

	case r.err != nil:
		cfg.failures.Add(1.0)
		return zero, r.err

	default:
		cfg.completions.Add(1.0)
		return r.value, nil
	}
}
