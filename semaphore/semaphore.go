// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/portal-go/portal/clock"
	"github.com/portal-go/portal/deadline"
)

var (
	// ErrTimeout is returned when the deadline passes before the semaphore's
	// count becomes positive.  This error does not apply when waiting with a
	// context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("The semaphore could not be acquired within the timeout")
)

// Interface represents a counting semaphore.  The count starts at the value
// given to New and has no upper bound.  Each successful wait decrements the
// count by exactly one.
type Interface interface {
	// Signal increments the count and wakes at most one blocked waiter.
	// It never blocks and has no failure mode.
	Signal()

	// Wait blocks until the count becomes positive or the given timeout
	// elapses, whichever comes first.  On success the count is decremented
	// and nil is returned.  ErrTimeout is returned once the deadline,
	// computed when Wait is invoked, has genuinely passed.  Wakes that lose
	// the race for the count are retried internally against that same
	// deadline and are never misreported as either outcome.
	Wait(timeout time.Duration) error

	// WaitUntil behaves as Wait, bounded by an absolute wall-clock deadline
	// instead of a relative timeout.  An already-expired deadline produces
	// an immediate ErrTimeout unless the count is already positive.
	WaitUntil(d deadline.Deadline) error

	// WaitCtx blocks until the count becomes positive or the given context
	// is canceled.  This method returns ctx.Err() in the latter case.
	WaitCtx(ctx context.Context) error

	// TryWait attempts to decrement the count, returning false immediately
	// if the count is zero.
	TryWait() bool
}

// Option is a configuration option for a semaphore
type Option func(*semaphore)

// WithClock establishes the time source used to bound waits.  A nil clock
// leaves the system clock in place.
func WithClock(c clock.Interface) Option {
	return func(s *semaphore) {
		if c != nil {
			s.clock = c
		}
	}
}

// New constructs a semaphore with the given initial count.  A negative count
// will result in a panic.  A count of zero is the common case for hand-off
// cells: the first wait blocks until someone signals.
func New(count int, options ...Option) Interface {
	if count < 0 {
		panic("The count must be nonnegative")
	}

	s := &semaphore{
		count: count,
		wake:  make(chan struct{}, 1),
		clock: clock.System(),
	}

	for _, o := range options {
		o(s)
	}

	return s
}

// semaphore is the internal Interface implementation.  The count is guarded
// by a mutex, and wake delivery uses a capacity-1 notification channel so
// that Signal never blocks no matter how far the count runs ahead of the
// waiters.  A buffered token channel cannot represent an unbounded count.
type semaphore struct {
	lock  sync.Mutex
	count int
	wake  chan struct{}
	clock clock.Interface
}

func (s *semaphore) Signal() {
	s.lock.Lock()
	s.count++
	s.lock.Unlock()

	s.notify()
}

// notify sets the wake token if it isn't already set
func (s *semaphore) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// take attempts to decrement the count.  When the count remains positive
// afterward, the wake token is re-set so that the next blocked waiter is not
// stranded behind a burst of signals that saturated the token.
func (s *semaphore) take() bool {
	s.lock.Lock()
	ok := s.count > 0
	if ok {
		s.count--
	}
	pending := s.count > 0
	s.lock.Unlock()

	if pending {
		s.notify()
	}

	return ok
}

func (s *semaphore) TryWait() bool {
	return s.take()
}

func (s *semaphore) Wait(timeout time.Duration) error {
	if s.take() {
		return nil
	}

	// the timer fires exactly once, at the absolute deadline computed here,
	// so retries after losing a wake race remain bounded by that deadline
	now := s.clock.Now()
	t := s.clock.NewTimer(deadline.Expires(now, timeout).Sub(now))
	defer t.Stop()

	for {
		select {
		case <-s.wake:
			if s.take() {
				return nil
			}

		case <-t.C():
			return ErrTimeout
		}
	}
}

func (s *semaphore) WaitUntil(d deadline.Deadline) error {
	if s.take() {
		return nil
	}

	t := s.clock.NewTimer(d.Remaining(s.clock.Now()))
	defer t.Stop()

	for {
		select {
		case <-s.wake:
			if s.take() {
				return nil
			}

		case <-t.C():
			return ErrTimeout
		}
	}
}

func (s *semaphore) WaitCtx(ctx context.Context) error {
	for {
		if s.take() {
			return nil
		}

		select {
		case <-s.wake:
			// reexamine the count

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
