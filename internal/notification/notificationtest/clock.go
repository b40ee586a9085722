// Package notificationtest provides a simulated clock for driving
// notification timers in tests.
package notificationtest

import (
	"sort"
	"time"

	"github.com/nhle/todo/internal/notification"
)

// Clock is a notification.Scheduler whose time only moves when Advance is
// called. Callbacks run on the goroutine calling Advance.
type Clock struct {
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	at    time.Duration
	seq   int
	fn    func()
	armed bool
}

func (t *timer) Stop() bool {
	if !t.armed {
		return false
	}
	t.armed = false
	return true
}

// NewClock returns a Clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc implements notification.Scheduler.
func (c *Clock) AfterFunc(d time.Duration, fn func()) notification.Timer {
	c.seq++
	t := &timer{at: c.now + d, seq: c.seq, fn: fn, armed: true}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed simulated time.
func (c *Clock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d, running every timer that comes due
// in deadline order. Timers armed by callbacks run too if they fall within d.
func (c *Clock) Advance(d time.Duration) {
	end := c.now + d
	for {
		t := c.next(end)
		if t == nil {
			break
		}
		c.now = t.at
		t.armed = false
		t.fn()
	}
	c.now = end
}

// Pending returns the number of armed timers.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if t.armed {
			n++
		}
	}
	return n
}

func (c *Clock) next(end time.Duration) *timer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.armed {
			live = append(live, t)
		}
	}
	c.timers = live

	sort.Slice(live, func(i, j int) bool {
		if live[i].at == live[j].at {
			return live[i].seq < live[j].seq
		}
		return live[i].at < live[j].at
	})
	if len(live) == 0 || live[0].at > end {
		return nil
	}
	return live[0]
}
