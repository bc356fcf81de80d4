package portal

import "errors"

var (
	// ErrNotClosed is returned by Open when the waiter woke without any
	// completer having recorded a result, i.e. the portal was destroyed
	// without ever being closed.  This indicates a usage defect.
	ErrNotClosed = errors.New("The portal was destroyed without being closed")

	// ErrTimedOut is returned by Open when the timeout elapses before any
	// completer records a result.
	ErrTimedOut = errors.New("The portal was not closed within the timeout")
)
