package notification

import "time"

// Timer is a handle to a callback scheduled with a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still armed.
	Stop() bool
}

// Scheduler runs a callback once after a delay. Implementations used with a
// Presenter must dispatch callbacks on the same loop that drives the
// Presenter.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules callbacks with time.AfterFunc. Callbacks run on
// their own goroutine, so it only suits owners that serialize access
// themselves.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
