package notification

import (
	"slices"

	"github.com/rs/zerolog"
)

// State is the execution state of a Presenter.
type State int

const (
	// StateIdle means nothing is shown and nothing is queued.
	StateIdle State = iota
	// StateExecuting means exactly one notification is shown and armed.
	StateExecuting
)

func (s State) String() string {
	if s == StateExecuting {
		return "executing"
	}
	return "idle"
}

// Surface displays the Presenter's current notification.
type Surface interface {
	// Reveal shows n.
	Reveal(n *Notification)
	// Sync is called when a displayed property of n changes.
	Sync(n *Notification, p Property)
	// Hide removes the notification area.
	Hide()
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithLogger sets the logger used for queue transitions.
func WithLogger(l zerolog.Logger) PresenterOption {
	return func(p *Presenter) {
		p.log = l
	}
}

// Presenter is a FIFO queue of notifications that shows one at a time and
// moves on to the next when the current one finishes.
type Presenter struct {
	surface   Surface
	scheduler Scheduler
	log       zerolog.Logger

	queue   []*Notification
	current *Notification
	state   State
	unbind  []func()
}

// NewPresenter creates an idle Presenter drawing on surface. Notifications
// without a scheduler of their own get sched when enqueued.
func NewPresenter(surface Surface, sched Scheduler, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		surface:   surface,
		scheduler: sched,
		log:       zerolog.Nop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current execution state.
func (p *Presenter) State() State { return p.state }

// Current returns the notification being shown, or nil.
func (p *Presenter) Current() *Notification { return p.current }

// Len returns the number of notifications waiting behind the current one.
func (p *Presenter) Len() int { return len(p.queue) }

// Queued returns the waiting notifications in presentation order.
func (p *Presenter) Queued() []*Notification {
	return slices.Clone(p.queue)
}

// Notify enqueues n. Enqueueing a notification that is already queued or
// shown, or one whose action already ran, does nothing.
func (p *Presenter) Notify(n *Notification) {
	if n == nil {
		p.log.Warn().Msg("notify called with nil notification")
		return
	}
	if n.Executed() {
		p.log.Warn().Str("id", n.ID()).Msg("refusing to enqueue executed notification")
		return
	}
	if n == p.current || slices.Contains(p.queue, n) {
		return
	}
	if n.scheduler == nil {
		n.SetScheduler(p.scheduler)
	}

	p.queue = append(p.queue, n)
	p.log.Debug().
		Str("id", n.ID()).
		Str("text", n.Text()).
		Int("queued", len(p.queue)).
		Msg("notification queued")

	if p.state == StateIdle {
		p.advance()
	}
}

// Cancel withdraws n without running any of its actions. If n is shown, the
// next notification is presented.
func (p *Presenter) Cancel(n *Notification) {
	if n == nil {
		return
	}
	if n == p.current {
		n.Stop()
		p.log.Debug().Str("id", n.ID()).Msg("current notification canceled")
		p.advance()
		return
	}
	if i := slices.Index(p.queue, n); i >= 0 {
		p.queue = slices.Delete(p.queue, i, i+1)
		p.log.Debug().Str("id", n.ID()).Msg("queued notification canceled")
	}
}

// Dismiss stops the current notification and runs its primary action. A
// notification without a primary action is simply taken down.
func (p *Presenter) Dismiss() {
	n := p.current
	if n == nil {
		return
	}
	n.Stop()
	if !n.ExecutePrimaryAction() && n == p.current {
		p.advance()
	}
}

// ActivateSecondary stops the current notification and runs its secondary
// action, if it has one.
func (p *Presenter) ActivateSecondary() {
	n := p.current
	if n == nil || !n.HasSecondaryAction() {
		return
	}
	n.Stop()
	n.ExecuteSecondaryAction()
}

// DismissAll dismisses the current notification until the queue is empty.
// Notifications enqueued by the actions themselves are dismissed too, up to
// the number pending when DismissAll was called.
func (p *Presenter) DismissAll() {
	for remaining := len(p.queue) + 1; remaining > 0 && p.current != nil; remaining-- {
		p.Dismiss()
	}
}

// advance forgets the current notification and presents the head of the
// queue, or goes idle. Heads whose action already ran while they waited are
// dropped, since nothing could finish them.
func (p *Presenter) advance() {
	p.release()

	for len(p.queue) > 0 && p.queue[0].Executed() {
		p.log.Debug().Str("id", p.queue[0].ID()).Msg("skipping executed notification")
		p.queue = slices.Delete(p.queue, 0, 1)
	}

	if len(p.queue) == 0 {
		p.current = nil
		p.state = StateIdle
		p.surface.Hide()
		p.log.Debug().Msg("notification queue idle")
		return
	}

	n := p.queue[0]
	p.queue = slices.Delete(p.queue, 0, 1)
	p.current = n
	p.state = StateExecuting

	p.surface.Reveal(n)
	p.bind(n)
	n.Start()

	p.log.Debug().
		Str("id", n.ID()).
		Dur("timeout", n.Timeout()).
		Int("queued", len(p.queue)).
		Msg("notification presented")
}

func (p *Presenter) bind(n *Notification) {
	finished := func(fired *Notification) {
		if fired != p.current {
			return
		}
		p.log.Debug().Str("id", fired.ID()).Bool("executed", fired.Executed()).Msg("notification finished")
		p.advance()
	}

	p.unbind = append(p.unbind,
		n.OnExecuted(finished),
		n.OnExpired(finished),
		n.OnChange(func(n *Notification, prop Property) {
			switch prop {
			case PropText, PropHasSecondaryAction, PropSecondaryActionName, PropReady:
				p.surface.Sync(n, prop)
			}
		}),
	)
}

func (p *Presenter) release() {
	for _, cancel := range p.unbind {
		cancel()
	}
	p.unbind = nil
}
