/*
Package portal bridges asynchronous completions to synchronous callers.  A
Portal is a one-shot, write-once cell that hands a value or an error from a
completer, often running on another goroutine, to exactly one waiter blocked
inside Open.

The waiter supplies a handler that receives the fresh portal and arranges its
eventual completion.  The handler runs synchronously on the calling goroutine
and must not itself block on the result, or Open would deadlock:

	value, err := portal.Open(func(p *portal.Portal[int]) {
		go func() {
			p.Close(compute())
		}()
	}, portal.WithTimeout(5*time.Second))

Closing a portal more than once has no effect beyond the first call, and a
completer that finishes after the waiter has timed out closes into the void
harmlessly.
*/
package portal
