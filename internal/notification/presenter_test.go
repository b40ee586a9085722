package notification_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/notification"
	"github.com/nhle/todo/internal/notification/notificationtest"
)

// recordingSurface logs every call made by the presenter.
type recordingSurface struct {
	shown   []string
	synced  []notification.Property
	hidden  int
	visible *notification.Notification
}

func (s *recordingSurface) Reveal(n *notification.Notification) {
	s.visible = n
	s.shown = append(s.shown, n.Text())
}

func (s *recordingSurface) Sync(_ *notification.Notification, p notification.Property) {
	s.synced = append(s.synced, p)
}

func (s *recordingSurface) Hide() {
	s.visible = nil
	s.hidden++
}

type fixture struct {
	clock     *notificationtest.Clock
	surface   *recordingSurface
	presenter *notification.Presenter
	actions   []string
}

func newFixture() *fixture {
	f := &fixture{
		clock:   notificationtest.NewClock(),
		surface: &recordingSurface{},
	}
	f.presenter = notification.NewPresenter(f.surface, f.clock)
	return f
}

// notice builds a notification whose actions append to f.actions.
func (f *fixture) notice(text string, timeout time.Duration) *notification.Notification {
	n := notification.New(text, timeout)
	n.SetPrimaryAction(func(n *notification.Notification, _ any) {
		f.actions = append(f.actions, "primary:"+n.Text())
	}, nil)
	n.SetSecondaryAction("Undo", func(n *notification.Notification, _ any) {
		f.actions = append(f.actions, "secondary:"+n.Text())
	}, nil)
	return n
}

func TestPresenterStartsIdle(t *testing.T) {
	f := newFixture()

	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Nil(t, f.presenter.Current())
	assert.Zero(t, f.presenter.Len())
}

func TestPresenterFIFOOrder(t *testing.T) {
	f := newFixture()
	var texts []string
	for i := 1; i <= 5; i++ {
		text := fmt.Sprintf("n%d", i)
		texts = append(texts, text)
		f.presenter.Notify(f.notice(text, 100*time.Millisecond))
	}

	assert.Equal(t, notification.StateExecuting, f.presenter.State())
	assert.Equal(t, 4, f.presenter.Len())

	for range texts {
		f.clock.Advance(100 * time.Millisecond)
	}

	assert.Equal(t, texts, f.surface.shown)
	assert.Equal(t, []string{
		"primary:n1", "primary:n2", "primary:n3", "primary:n4", "primary:n5",
	}, f.actions)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Equal(t, 1, f.surface.hidden)
	assert.Nil(t, f.surface.visible)
}

func TestPresenterArmsOnlyCurrent(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	n3 := f.notice("n3", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)
	f.presenter.Notify(n3)

	assert.True(t, n1.Running())
	assert.False(t, n2.Running())
	assert.False(t, n3.Running())
	assert.Equal(t, 1, f.clock.Pending())
	assert.Same(t, n1, f.presenter.Current())
	assert.Equal(t, []*notification.Notification{n2, n3}, f.presenter.Queued())
}

func TestPresenterCancelWhileQueued(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	n3 := f.notice("n3", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)
	f.presenter.Notify(n3)

	f.presenter.Cancel(n2)
	assert.Same(t, n1, f.presenter.Current())
	assert.Equal(t, 1, f.presenter.Len())

	f.clock.Advance(time.Second)
	assert.Same(t, n3, f.presenter.Current())

	f.clock.Advance(time.Second)
	assert.Equal(t, []string{"n1", "n3"}, f.surface.shown)
	assert.Equal(t, []string{"primary:n1", "primary:n3"}, f.actions)
	assert.False(t, n2.Executed())
}

func TestPresenterCancelCurrentGoesIdle(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	f.presenter.Notify(n1)
	require.True(t, n1.Running())

	f.presenter.Cancel(n1)

	assert.False(t, n1.Running())
	assert.Zero(t, f.clock.Pending())
	assert.Empty(t, f.actions)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Nil(t, f.presenter.Current())
	assert.Equal(t, 1, f.surface.hidden)

	f.clock.Advance(time.Hour)
	assert.Empty(t, f.actions)
}

func TestPresenterCancelCurrentAdvances(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)

	f.presenter.Cancel(n1)

	assert.Same(t, n2, f.presenter.Current())
	assert.True(t, n2.Running())
	assert.Empty(t, f.actions)
}

func TestPresenterCanceledCurrentCannotAdvanceLater(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)

	f.presenter.Cancel(n1)
	// The collaborator still holds n1 and runs it by hand.
	n1.ExecutePrimaryAction()

	assert.Same(t, n2, f.presenter.Current())
	assert.Equal(t, notification.StateExecuting, f.presenter.State())
}

func TestPresenterCancelUnknownIsNoop(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	f.presenter.Notify(n1)

	f.presenter.Cancel(f.notice("stranger", time.Second))
	f.presenter.Cancel(nil)

	assert.Same(t, n1, f.presenter.Current())
	assert.True(t, n1.Running())
}

func TestPresenterIdempotentNotify(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)

	f.presenter.Notify(n1)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)
	f.presenter.Notify(n2)
	f.presenter.Notify(n1)

	assert.Equal(t, 1, f.presenter.Len())

	f.clock.Advance(time.Second)
	f.clock.Advance(time.Second)

	assert.Equal(t, []string{"n1", "n2"}, f.surface.shown)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
}

func TestPresenterRejectsExecutedNotification(t *testing.T) {
	f := newFixture()
	n := f.notice("n", time.Second)
	n.ExecutePrimaryAction()
	f.actions = nil

	f.presenter.Notify(n)

	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Empty(t, f.surface.shown)
}

func TestPresenterNotifyNilIsNoop(t *testing.T) {
	f := newFixture()
	f.presenter.Notify(nil)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
}

func TestPresenterTimeoutAutoFire(t *testing.T) {
	f := newFixture()
	n := f.notice("msg", 100*time.Millisecond)
	executed := 0
	n.OnExecuted(func(*notification.Notification) { executed++ })
	f.presenter.Notify(n)

	f.clock.Advance(99 * time.Millisecond)
	assert.Empty(t, f.actions)

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"primary:msg"}, f.actions)
	assert.Equal(t, 1, executed)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
}

func TestPresenterNoTimeoutPersists(t *testing.T) {
	f := newFixture()
	n := f.notice("msg", 0)
	f.presenter.Notify(n)

	f.clock.Advance(24 * time.Hour)
	assert.Empty(t, f.actions)
	assert.Same(t, n, f.presenter.Current())

	f.presenter.Dismiss()
	assert.Equal(t, []string{"primary:msg"}, f.actions)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
}

func TestPresenterExactlyOnceAcrossEndings(t *testing.T) {
	endings := map[string]func(f *fixture){
		"timeout":   func(f *fixture) { f.clock.Advance(time.Second) },
		"dismiss":   func(f *fixture) { f.presenter.Dismiss() },
		"secondary": func(f *fixture) { f.presenter.ActivateSecondary() },
	}

	for name, end := range endings {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			n := f.notice("n", time.Second)
			executed := 0
			n.OnExecuted(func(*notification.Notification) { executed++ })
			f.presenter.Notify(n)

			end(f)
			// Anything arriving afterwards must not fire n again.
			f.presenter.Dismiss()
			f.presenter.ActivateSecondary()
			f.clock.Advance(time.Hour)

			assert.Len(t, f.actions, 1)
			assert.Equal(t, 1, executed)
			assert.Equal(t, notification.StateIdle, f.presenter.State())
		})
	}
}

func TestPresenterSecondaryChoice(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)

	f.presenter.ActivateSecondary()

	assert.Equal(t, []string{"secondary:n1"}, f.actions)
	assert.False(t, n1.Running())
	assert.Same(t, n2, f.presenter.Current())
	assert.True(t, n2.Running())
}

func TestPresenterSecondaryWithoutActionIsNoop(t *testing.T) {
	f := newFixture()
	n := notification.New("plain", time.Second)
	n.SetPrimaryAction(func(*notification.Notification, any) {}, nil)
	f.presenter.Notify(n)

	f.presenter.ActivateSecondary()

	assert.Same(t, n, f.presenter.Current())
	assert.True(t, n.Running())
}

func TestPresenterSkipsHeadExecutedWhileQueued(t *testing.T) {
	f := newFixture()
	n1 := f.notice("n1", time.Second)
	n2 := f.notice("n2", time.Second)
	n3 := f.notice("n3", time.Second)
	f.presenter.Notify(n1)
	f.presenter.Notify(n2)
	f.presenter.Notify(n3)

	require.True(t, n2.ExecuteSecondaryAction())
	f.clock.Advance(time.Second)

	assert.Same(t, n3, f.presenter.Current())
	assert.True(t, n3.Running())

	f.clock.Advance(time.Second)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Equal(t, []string{"secondary:n2", "primary:n1", "primary:n3"}, f.actions)
}

func TestPresenterEmptyFireForceAdvances(t *testing.T) {
	f := newFixture()
	empty := notification.New("nothing to do", 100*time.Millisecond)
	next := f.notice("next", time.Second)
	f.presenter.Notify(empty)
	f.presenter.Notify(next)

	f.clock.Advance(100 * time.Millisecond)

	assert.Same(t, next, f.presenter.Current())
	assert.False(t, empty.Executed())
	assert.Empty(t, f.actions)
}

func TestPresenterEmptyDismissForceAdvances(t *testing.T) {
	f := newFixture()
	loading := notification.New("Loading", 0)
	loading.SetReady(false)
	f.presenter.Notify(loading)

	f.presenter.Dismiss()

	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.False(t, loading.Executed())
}

func TestPresenterDismissAll(t *testing.T) {
	f := newFixture()
	f.presenter.Notify(notification.New("loading", 0))
	for i := 1; i <= 3; i++ {
		f.presenter.Notify(f.notice(fmt.Sprintf("n%d", i), time.Second))
	}

	f.presenter.DismissAll()

	assert.Equal(t, []string{"primary:n1", "primary:n2", "primary:n3"}, f.actions)
	assert.Equal(t, notification.StateIdle, f.presenter.State())
	assert.Zero(t, f.clock.Pending())
}

func TestPresenterDismissAllIsBounded(t *testing.T) {
	f := newFixture()
	var spawn func(n *notification.Notification, _ any)
	spawn = func(*notification.Notification, any) {
		again := notification.New("again", time.Second)
		again.SetPrimaryAction(spawn, nil)
		f.presenter.Notify(again)
	}
	n := notification.New("first", time.Second)
	n.SetPrimaryAction(spawn, nil)
	f.presenter.Notify(n)

	f.presenter.DismissAll()

	assert.Equal(t, notification.StateExecuting, f.presenter.State())
	assert.Equal(t, "again", f.presenter.Current().Text())
}

func TestPresenterSyncsBoundProperties(t *testing.T) {
	f := newFixture()
	n := f.notice("n", time.Second)
	f.presenter.Notify(n)

	n.SetText("renamed")
	n.SetReady(false)
	n.SetTimeout(2 * time.Second)
	n.SetSecondaryAction("Restore", func(*notification.Notification, any) {}, nil)

	assert.Equal(t, []notification.Property{
		notification.PropText,
		notification.PropReady,
		notification.PropSecondaryActionName,
	}, f.surface.synced)

	f.presenter.Cancel(n)
	n.SetText("after")
	assert.Len(t, f.surface.synced, 3)
}

func TestPresenterActionMayEnqueue(t *testing.T) {
	f := newFixture()
	follow := f.notice("follow-up", time.Second)
	n := notification.New("first", time.Second)
	n.SetPrimaryAction(func(*notification.Notification, any) {
		f.presenter.Notify(follow)
	}, nil)
	f.presenter.Notify(n)

	f.clock.Advance(time.Second)

	assert.Same(t, follow, f.presenter.Current())
	assert.True(t, follow.Running())
}

func TestPresenterLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	clock := notificationtest.NewClock()
	p := notification.NewPresenter(&recordingSurface{}, clock, notification.WithLogger(logger))

	n := notification.New("logged", time.Second)
	p.Notify(n)
	p.Cancel(n)

	out := buf.String()
	assert.Contains(t, out, "notification presented")
	assert.Contains(t, out, "current notification canceled")
	assert.Contains(t, out, n.ID())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", notification.StateIdle.String())
	assert.Equal(t, "executing", notification.StateExecuting.String())
}
