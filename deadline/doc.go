/*
Package deadline converts relative timeouts into absolute deadlines usable by
blocking waits.  Two strategies are provided: Expires produces a time.Time that
retains Go's monotonic clock reading, suitable for arming timers, while At
produces a wall-clock (seconds, nanoseconds) instant for waits that are bounded
by an absolute point in time.  All arithmetic is integer arithmetic; fractional
seconds never round-trip through strings.
*/
package deadline
