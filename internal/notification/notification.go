// Package notification implements in-app notifications: a Notification is a
// deferred, cancelable action that fires at most once, and a Presenter shows
// queued notifications one at a time in arrival order.
//
// Neither type is safe for concurrent use. All calls, including timer
// callbacks delivered by the Scheduler, must happen on a single event loop.
package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout is how long a notification stays up before its
	// primary action fires.
	DefaultTimeout = 7500 * time.Millisecond

	// MaxTimeout is the largest accepted timeout. Larger values are clamped.
	MaxTimeout = 30 * time.Second
)

// ActionFunc is an action attached to a notification. data is the value
// given when the action was attached.
type ActionFunc func(n *Notification, data any)

// Property identifies an observable attribute of a Notification.
type Property int

const (
	PropText Property = iota
	PropTimeout
	PropHasPrimaryAction
	PropHasSecondaryAction
	PropSecondaryActionName
	PropReady
)

func (p Property) String() string {
	switch p {
	case PropText:
		return "text"
	case PropTimeout:
		return "timeout"
	case PropHasPrimaryAction:
		return "has-primary-action"
	case PropHasSecondaryAction:
		return "has-secondary-action"
	case PropSecondaryActionName:
		return "secondary-action-name"
	case PropReady:
		return "ready"
	default:
		return "unknown"
	}
}

type action struct {
	fn   ActionFunc
	data any
}

// Notification is a single user-facing message carrying a primary action,
// run on timeout or dismissal, and an optional secondary action that only
// runs on explicit user choice. At most one of them runs, once.
type Notification struct {
	id      string
	text    string
	timeout time.Duration
	ready   bool

	primary       *action
	secondary     *action
	secondaryName string

	scheduler Scheduler
	timer     Timer
	executed  bool

	changed  handlers[func(*Notification, Property)]
	onExec   handlers[func(*Notification)]
	onExpire handlers[func(*Notification)]
}

// New creates a notification showing text whose primary action fires after
// timeout. A zero timeout means it never fires on its own.
func New(text string, timeout time.Duration) *Notification {
	return &Notification{
		id:      uuid.New().String(),
		text:    text,
		timeout: clampTimeout(timeout),
		ready:   true,
	}
}

func clampTimeout(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

// ID returns a unique identifier, used for logging.
func (n *Notification) ID() string { return n.id }

// Text returns the message shown to the user.
func (n *Notification) Text() string { return n.text }

// SetText changes the message.
func (n *Notification) SetText(text string) {
	if n.text == text {
		return
	}
	n.text = text
	n.emitChanged(PropText)
}

// Timeout returns the delay before the primary action fires.
func (n *Notification) Timeout() time.Duration { return n.timeout }

// SetTimeout changes the delay used by the next Start.
func (n *Notification) SetTimeout(d time.Duration) {
	d = clampTimeout(d)
	if n.timeout == d {
		return
	}
	n.timeout = d
	n.emitChanged(PropTimeout)
}

// Ready reports whether the notification no longer waits on an
// asynchronous operation.
func (n *Notification) Ready() bool { return n.ready }

// SetReady changes the ready flag.
func (n *Notification) SetReady(ready bool) {
	if n.ready == ready {
		return
	}
	n.ready = ready
	n.emitChanged(PropReady)
}

// HasPrimaryAction reports whether a primary action is attached.
func (n *Notification) HasPrimaryAction() bool { return n.primary != nil }

// HasSecondaryAction reports whether a secondary action is attached.
func (n *Notification) HasSecondaryAction() bool { return n.secondary != nil }

// SecondaryActionName returns the label of the secondary action.
func (n *Notification) SecondaryActionName() string { return n.secondaryName }

// Running reports whether the timeout timer is armed.
func (n *Notification) Running() bool { return n.timer != nil }

// Executed reports whether one of the actions already ran.
func (n *Notification) Executed() bool { return n.executed }

// SetPrimaryAction attaches fn, or detaches the primary action when fn is
// nil. Observers are told only when the presence of an action changes.
func (n *Notification) SetPrimaryAction(fn ActionFunc, data any) {
	had := n.primary != nil
	if fn == nil {
		n.primary = nil
	} else {
		n.primary = &action{fn: fn, data: data}
	}
	if had != (fn != nil) {
		n.emitChanged(PropHasPrimaryAction)
	}
}

// SetSecondaryAction attaches fn under the label name, or detaches the
// secondary action when fn is nil.
func (n *Notification) SetSecondaryAction(name string, fn ActionFunc, data any) {
	had := n.secondary != nil
	if fn == nil {
		n.secondary = nil
	} else {
		n.secondary = &action{fn: fn, data: data}
	}
	if n.secondaryName != name {
		n.secondaryName = name
		n.emitChanged(PropSecondaryActionName)
	}
	if had != (fn != nil) {
		n.emitChanged(PropHasSecondaryAction)
	}
}

// SetScheduler sets the scheduler used to arm the timeout timer.
func (n *Notification) SetScheduler(s Scheduler) {
	n.scheduler = s
}

// Start arms the timeout timer, replacing any armed one. It does nothing
// when the timeout is zero or an action already ran.
func (n *Notification) Start() {
	if n.timeout == 0 || n.executed {
		return
	}
	n.Stop()

	s := n.scheduler
	if s == nil {
		s = SystemScheduler{}
	}

	var t Timer
	t = s.AfterFunc(n.timeout, func() {
		if n.timer != t {
			return
		}
		n.timer = nil
		if !n.ExecutePrimaryAction() {
			n.onExpire.emit(func(fn func(*Notification)) { fn(n) })
		}
	})
	n.timer = t
}

// Stop disarms the timeout timer. It is safe to call at any time.
func (n *Notification) Stop() {
	if n.timer == nil {
		return
	}
	n.timer.Stop()
	n.timer = nil
}

// ExecutePrimaryAction runs the primary action and notifies OnExecuted
// observers. It reports false, without notifying, when there is no primary
// action or an action already ran.
func (n *Notification) ExecutePrimaryAction() bool {
	return n.execute(n.primary)
}

// ExecuteSecondaryAction runs the secondary action. See ExecutePrimaryAction.
func (n *Notification) ExecuteSecondaryAction() bool {
	return n.execute(n.secondary)
}

func (n *Notification) execute(a *action) bool {
	if a == nil || n.executed {
		return false
	}
	n.executed = true
	n.Stop()
	a.fn(n, a.data)
	n.onExec.emit(func(fn func(*Notification)) { fn(n) })
	return true
}

// OnChange registers fn to be called when a property changes. The returned
// func removes it.
func (n *Notification) OnChange(fn func(*Notification, Property)) (cancel func()) {
	return n.changed.add(fn)
}

// OnExecuted registers fn to be called once an action ran.
func (n *Notification) OnExecuted(fn func(*Notification)) (cancel func()) {
	return n.onExec.add(fn)
}

// OnExpired registers fn to be called when the timeout elapses on a
// notification without a primary action.
func (n *Notification) OnExpired(fn func(*Notification)) (cancel func()) {
	return n.onExpire.add(fn)
}

func (n *Notification) emitChanged(p Property) {
	n.changed.emit(func(fn func(*Notification, Property)) { fn(n, p) })
}

type handler[F any] struct {
	fn     F
	active bool
}

// handlers is an observer list. Handlers removed while an emission is in
// progress are not called afterwards.
type handlers[F any] struct {
	list []*handler[F]
}

func (h *handlers[F]) add(fn F) func() {
	e := &handler[F]{fn: fn, active: true}
	h.list = append(h.list, e)
	return func() {
		if !e.active {
			return
		}
		e.active = false
		for i, x := range h.list {
			if x == e {
				h.list = append(h.list[:i:i], h.list[i+1:]...)
				break
			}
		}
	}
}

func (h *handlers[F]) emit(call func(F)) {
	snapshot := append([]*handler[F](nil), h.list...)
	for _, e := range snapshot {
		if e.active {
			call(e.fn)
		}
	}
}
