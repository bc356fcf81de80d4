// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/portal-go/portal/deadline"
	"github.com/portal-go/portal/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a metric that tracks the semaphore's count: each
// signal adds one, each successful wait subtracts one.  If a nil adder is
// supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewCounter()
		}
	}
}

// WithFailures establishes a metric that tracks how many waits ended in a
// timeout or cancellation rather than a signal.  If a nil adder is supplied,
// failure counts are discarded.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.
// A nil semaphore results in a panic.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("A semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewCounter(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources xmetrics.Adder
	failures  xmetrics.Adder
}

func (is *instrumentedSemaphore) Signal() {
	is.Interface.Signal()
	is.resources.Add(1.0)
}

func (is *instrumentedSemaphore) Wait(timeout time.Duration) (err error) {
	err = is.Interface.Wait(timeout)
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(-1.0)
	}

	return
}

func (is *instrumentedSemaphore) WaitUntil(d deadline.Deadline) (err error) {
	err = is.Interface.WaitUntil(d)
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(-1.0)
	}

	return
}

func (is *instrumentedSemaphore) WaitCtx(ctx context.Context) (err error) {
	err = is.Interface.WaitCtx(ctx)
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(-1.0)
	}

	return
}

func (is *instrumentedSemaphore) TryWait() bool {
	ok := is.Interface.TryWait()
	if ok {
		is.resources.Add(-1.0)
	}

	return ok
}
