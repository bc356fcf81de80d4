package portal

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/portal-go/portal/semaphore"
)

// Portal is a one-shot hand-off cell between exactly one waiter and one
// eventual completer.  Portals are created by Open, which passes the fresh
// instance to a handler; they have no use outside that single Open call.
//
// The result field is write-once: of all Close, CloseError, and Destroy
// calls, only the first Close or CloseError ever records anything.
type Portal[T any] struct {
	lock   sync.Mutex
	result *result[T]
	sem    semaphore.Interface
	logger log.Logger
}

// result is the tagged union recorded by the first close
type result[T any] struct {
	value T
	err   error
}

// Close records a success value and wakes the waiter.  If a result has
// already been recorded, this method has no observable effect.
func (p *Portal[T]) Close(value T) {
	p.complete(&result[T]{value: value})
}

// CloseError records a failure and wakes the waiter.  The error is surfaced
// verbatim from Open.  If a result has already been recorded, this method
// has no observable effect.
func (p *Portal[T]) CloseError(err error) {
	p.complete(&result[T]{err: err})
}

func (p *Portal[T]) complete(r *result[T]) {
	p.lock.Lock()
	if p.result != nil {
		p.lock.Unlock()
		level.Debug(p.logger).Log("msg", "portal already closed")
		return
	}

	p.result = r
	p.lock.Unlock()

	// the write above happens before this signal, so the waiter, which reads
	// the result only after waking, always observes it
	p.sem.Signal()
}

// Destroy wakes the waiter without recording a result.  If no close has
// recorded a result by the time the waiter wakes, Open returns ErrNotClosed.
// Destroy cannot overwrite a recorded result, but when it races ahead of a
// delayed close, the waiter's single wake determines which outcome is seen.
func (p *Portal[T]) Destroy() {
	level.Debug(p.logger).Log("msg", "portal destroyed")
	p.sem.Signal()
}

// load reads the recorded result, if any.  Called only by the waiter, after
// it has woken from the semaphore.
func (p *Portal[T]) load() *result[T] {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.result
}
