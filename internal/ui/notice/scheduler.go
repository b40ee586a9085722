package notice

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/notification"
)

// timerFiredMsg is delivered when a notification timer elapses.
type timerFiredMsg struct {
	sched *scheduler
	id    int
}

// scheduler runs notification timers as Bubble Tea commands so that
// callbacks execute inside Update, on the same goroutine as every other call
// into the Presenter. Stopping a timer releases its command at once, so a
// batch or sequence holding it never waits out the timeout.
type scheduler struct {
	nextID  int
	pending map[int]armed
	post    func(tea.Cmd)
}

type armed struct {
	fn   func()
	done chan struct{}
}

func newScheduler(post func(tea.Cmd)) *scheduler {
	return &scheduler{
		pending: make(map[int]armed),
		post:    post,
	}
}

// AfterFunc implements notification.Scheduler.
func (s *scheduler) AfterFunc(d time.Duration, fn func()) notification.Timer {
	s.nextID++
	id := s.nextID
	done := make(chan struct{})
	s.pending[id] = armed{fn: fn, done: done}
	s.post(func() tea.Msg {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return timerFiredMsg{sched: s, id: id}
		case <-done:
			return nil
		}
	})
	return timer{sched: s, id: id}
}

// fire runs the callback registered under id, if it is still armed.
func (s *scheduler) fire(id int) bool {
	a, ok := s.disarm(id)
	if !ok {
		return false
	}
	a.fn()
	return true
}

func (s *scheduler) disarm(id int) (armed, bool) {
	a, ok := s.pending[id]
	if !ok {
		return armed{}, false
	}
	delete(s.pending, id)
	close(a.done)
	return a, true
}

type timer struct {
	sched *scheduler
	id    int
}

func (t timer) Stop() bool {
	_, ok := t.sched.disarm(t.id)
	return ok
}
