package orch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/metrics"
	"github.com/rs/zerolog/log"
)

const defaultReleaseTimeout = 5 * time.Second

// ConfigSource yields the config a join attempt reads exactly once.
type ConfigSource interface {
	Current() domain.SessionConfig
}

type Options struct {
	// AutoPublish continues a successful join with Publish.
	AutoPublish bool
	// Screen requests screen capture instead of the camera.
	Screen bool
	// ReleaseTimeout bounds cleanup calls made after the caller's context is gone.
	ReleaseTimeout time.Duration
}

// SessionController owns one participant's session: its state, connection handle
// and local stream. Operations never overlap; a trigger that arrives while another
// is in flight is rejected.
type SessionController struct {
	svc      core.ConnectionService
	configs  ConfigSource
	notifier *app.Notifier
	registry *app.RemoteStreamRegistry
	opts     Options

	mu     sync.Mutex
	state  domain.SessionState
	busy   bool
	handle core.ConnectionHandle
	stream core.LocalStream

	// lost holds a connection loss reported while an operation was in flight.
	lost      core.ConnectionHandle
	lostCause error
}

func NewSessionController(svc core.ConnectionService, configs ConfigSource, notifier *app.Notifier, opts Options) *SessionController {
	if notifier == nil {
		notifier = app.NewNotifier()
	}
	if opts.ReleaseTimeout <= 0 {
		opts.ReleaseTimeout = defaultReleaseTimeout
	}
	c := &SessionController{
		svc:      svc,
		configs:  configs,
		notifier: notifier,
		opts:     opts,
	}
	c.registry = app.NewRemoteStreamRegistry(c.onRemotesChanged)
	metrics.SessionState.Set(float64(domain.StateIdle))
	return c
}

func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LocalStream returns the current local stream or nil.
func (c *SessionController) LocalStream() core.LocalStream {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream
}

// Participant returns the id the service settled on while a connection exists.
func (c *SessionController) Participant() (domain.ParticipantID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return 0, false
	}
	return c.handle.Participant(), true
}

func (c *SessionController) Remotes() []core.RemoteStream {
	return c.registry.Snapshot()
}

func (c *SessionController) Subscribe(l app.Listener) (unsubscribe func()) {
	return c.notifier.Subscribe(l)
}

// begin claims the controller for trig. noop is set when trig is leave and
// there is nothing to leave.
func (c *SessionController) begin(trig domain.Trigger) (from domain.SessionState, noop bool, err error) {
	c.mu.Lock()
	from = c.state
	if trig == domain.TriggerLeave && from == domain.StateIdle && !c.busy {
		c.mu.Unlock()
		return from, true, nil
	}
	to, ok := app.Next(from, trig)
	if c.busy || !ok {
		c.mu.Unlock()
		log.Debug().
			Str("module", "orch").
			Str("op", string(trig)).
			Str("state", from.String()).
			Bool("busy", c.busy).
			Msg("rejected trigger")
		metrics.OperationsTotal.WithLabelValues(string(trig), domain.Code(domain.ErrInvalidTransition)).Inc()
		return from, false, &domain.OpError{Op: trig, Kind: domain.ErrInvalidTransition, State: from}
	}
	c.busy = true
	if to.Transient() {
		c.state = to
	}
	c.mu.Unlock()

	if to.Transient() {
		c.changed(trig, from, to)
	}
	return from, false, nil
}

// finish settles the state after an operation and releases the controller.
// A loss of the current connection recorded meanwhile tears the session down.
func (c *SessionController) finish(trig domain.Trigger, to domain.SessionState, err error) error {
	c.mu.Lock()
	from := c.state
	c.state = to
	lost, cause := c.lost, c.lostCause
	c.lost, c.lostCause = nil, nil
	if lost == nil || to == domain.StateIdle || lost != c.handle {
		lost = nil
		c.busy = false
	}
	c.mu.Unlock()

	metrics.OperationsTotal.WithLabelValues(string(trig), domain.Code(err)).Inc()
	if from != to {
		c.changed(trig, from, to)
	}
	if lost != nil {
		c.dropConnection(lost, cause)
	}
	return err
}

// handoff settles trig at mid and starts next right away, keeping the
// controller claimed in between.
func (c *SessionController) handoff(trig domain.Trigger, mid domain.SessionState, next domain.Trigger) {
	to, _ := app.Next(mid, next)
	c.mu.Lock()
	from := c.state
	c.state = mid
	c.mu.Unlock()

	metrics.OperationsTotal.WithLabelValues(string(trig), domain.Code(nil)).Inc()
	c.changed(trig, from, mid)

	c.mu.Lock()
	c.state = to
	c.mu.Unlock()
	c.changed(next, mid, to)
}

func (c *SessionController) changed(trig domain.Trigger, from, to domain.SessionState) {
	metrics.SessionState.Set(float64(to))
	log.Info().
		Str("module", "orch").
		Str("op", string(trig)).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("state changed")
	c.notifier.Publish(app.Notification{
		Kind:    app.NotifyState,
		Op:      trig,
		From:    from,
		To:      to,
		Remotes: c.registry.Len(),
	})
}

func (c *SessionController) onRemotesChanged(count int) {
	st := c.State()
	c.notifier.Publish(app.Notification{
		Kind:    app.NotifyRemotes,
		From:    st,
		To:      st,
		Remotes: count,
	})
}

func (c *SessionController) releaseCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.opts.ReleaseTimeout)
}

func opError(trig domain.Trigger, kind error, state domain.SessionState, cause ...error) error {
	return &domain.OpError{Op: trig, Kind: kind, State: state, Err: errors.Join(cause...)}
}
