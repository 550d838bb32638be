package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join connects with the config current at the time of the call and prepares
// a local stream. With AutoPublish set, the stream is published as well.
func (c *SessionController) Join(ctx context.Context) error {
	const trig = domain.TriggerJoin
	if _, _, err := c.begin(trig); err != nil {
		return err
	}
	cfg := c.configs.Current()

	if err := domain.ValidateConfig(cfg); err != nil {
		return c.finish(trig, domain.StateIdle, opError(trig, domain.ErrConfigInvalid, domain.StateIdle, err))
	}

	params := core.ConnectParams{
		AppID:   cfg.AppID,
		Channel: cfg.Channel,
		Token:   cfg.Token,
		Mode:    cfg.Mode,
		Codec:   cfg.Codec,
	}
	if id, ok := domain.ParseParticipantID(cfg.UID); ok {
		params.Participant = &id
	}

	log.Info().
		Str("module", "orch").
		Str("channel", cfg.Channel).
		Str("uid", participantField(params.Participant)).
		Str("mode", string(cfg.Mode)).
		Msg("joining")

	h, err := c.svc.Connect(ctx, params)
	if err != nil {
		if h != nil {
			c.release(ctx, h)
		}
		return c.finish(trig, domain.StateIdle, opError(trig, domain.ErrConnectFailed, domain.StateIdle, err))
	}
	h.OnClosed(func(err error) { c.onConnectionLost(h, err) })

	stream, err := c.svc.CreateLocalStream(ctx, core.StreamSpec{
		Participant:  h.Participant(),
		Video:        true,
		Audio:        true,
		Screen:       c.opts.Screen,
		CameraID:     cfg.CameraID,
		MicrophoneID: cfg.MicrophoneID,
	})
	if err != nil {
		c.release(ctx, h)
		return c.finish(trig, domain.StateIdle,
			opError(trig, domain.ErrConnectFailed, domain.StateIdle, fmt.Errorf("create local stream: %w", err)))
	}

	c.mu.Lock()
	c.handle = h
	c.stream = stream
	c.mu.Unlock()

	c.registry.Attach(h)

	log.Info().
		Str("module", "orch").
		Str("conn", h.ID()).
		Str("uid", h.Participant().String()).
		Str("stream", stream.ID()).
		Msg("joined")

	if c.opts.AutoPublish {
		c.handoff(trig, domain.StateJoined, domain.TriggerPublish)
		return c.publish(ctx)
	}
	return c.finish(trig, domain.StateJoined, nil)
}

// Leave tears the session down. Local resources are always released; remote
// failures are reported as LeaveFailed with the session already Idle.
func (c *SessionController) Leave(ctx context.Context) error {
	const trig = domain.TriggerLeave
	from, noop, err := c.begin(trig)
	if err != nil || noop {
		return err
	}

	c.mu.Lock()
	h, stream := c.handle, c.stream
	c.mu.Unlock()

	var errs []error
	if from == domain.StatePublished {
		if err := c.svc.Unpublish(ctx, h, stream); err != nil {
			errs = append(errs, err)
		}
	}
	if err := stream.Close(); err != nil {
		errs = append(errs, err)
	}
	c.registry.Detach()

	rctx, cancel := c.releaseCtx(ctx)
	defer cancel()
	if err := c.svc.Disconnect(rctx, h); err != nil {
		errs = append(errs, err)
	}

	c.mu.Lock()
	c.handle = nil
	c.stream = nil
	c.mu.Unlock()

	if len(errs) > 0 {
		log.Warn().Str("module", "orch").Errs("errors", errs).Msg("leave completed with errors")
		return c.finish(trig, domain.StateIdle, opError(trig, domain.ErrLeaveFailed, domain.StateIdle, errs...))
	}
	log.Info().Str("module", "orch").Str("conn", h.ID()).Msg("left")
	return c.finish(trig, domain.StateIdle, nil)
}

// onConnectionLost drops the session locally when the service goes away on its own.
// Loss during an in-flight operation is recorded and handled when it finishes.
func (c *SessionController) onConnectionLost(h core.ConnectionHandle, cause error) {
	c.mu.Lock()
	if c.busy {
		if c.lost == nil {
			c.lost, c.lostCause = h, cause
		}
		c.mu.Unlock()
		log.Debug().Str("module", "orch").Str("conn", h.ID()).Err(cause).Msg("connection lost during operation")
		return
	}
	if c.handle != h {
		c.mu.Unlock()
		log.Debug().Str("module", "orch").Str("conn", h.ID()).Msg("connection loss ignored")
		return
	}
	c.busy = true
	c.mu.Unlock()

	c.dropConnection(h, cause)
}

// dropConnection releases everything tied to the lost handle h and settles on
// Idle. The controller must be claimed by the caller; it is released here.
func (c *SessionController) dropConnection(h core.ConnectionHandle, cause error) {
	log.Warn().Str("module", "orch").Str("conn", h.ID()).Err(cause).Msg("connection lost")

	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()
	if stream != nil {
		_ = stream.Close()
	}
	c.registry.Detach()
	c.release(context.Background(), h)

	c.mu.Lock()
	from := c.state
	c.handle = nil
	c.stream = nil
	c.state = domain.StateIdle
	c.busy = false
	c.mu.Unlock()

	c.changed(domain.TriggerLost, from, domain.StateIdle)
}

// release disconnects a handle the session no longer wants.
func (c *SessionController) release(ctx context.Context, h core.ConnectionHandle) {
	rctx, cancel := c.releaseCtx(ctx)
	defer cancel()
	if err := c.svc.Disconnect(rctx, h); err != nil {
		log.Debug().Str("module", "orch").Str("conn", h.ID()).Err(err).Msg("release handle")
	}
}

func participantField(id *domain.ParticipantID) string {
	if id == nil {
		return "unset"
	}
	return id.String()
}
