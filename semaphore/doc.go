// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a counting semaphore with signal and timed-wait
semantics.  Unlike a resource semaphore, the count has no upper bound: Signal
never blocks, and a wait succeeds as soon as the count is positive.  Waits may
be bounded by a relative timeout, an absolute deadline, or a context.
*/
package semaphore
