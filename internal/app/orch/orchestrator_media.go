package orch

import (
	"context"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/rs/zerolog/log"
)

// Publish starts sending the local stream. On failure the stream is kept
// so the caller may try again.
func (c *SessionController) Publish(ctx context.Context) error {
	const trig = domain.TriggerPublish
	if _, _, err := c.begin(trig); err != nil {
		return err
	}
	return c.publish(ctx)
}

// publish runs with the controller claimed and the session Publishing.
func (c *SessionController) publish(ctx context.Context) error {
	const trig = domain.TriggerPublish
	c.mu.Lock()
	h, stream := c.handle, c.stream
	c.mu.Unlock()

	if err := c.svc.Publish(ctx, h, stream); err != nil {
		log.Warn().Str("module", "orch").Str("stream", stream.ID()).Err(err).Msg("publish failed")
		return c.finish(trig, domain.StateJoined, opError(trig, domain.ErrPublishFailed, domain.StateJoined, err))
	}
	log.Info().Str("module", "orch").Str("stream", stream.ID()).Msg("published")
	return c.finish(trig, domain.StatePublished, nil)
}

// Unpublish stops sending the local stream without closing it.
func (c *SessionController) Unpublish(ctx context.Context) error {
	const trig = domain.TriggerUnpublish
	if _, _, err := c.begin(trig); err != nil {
		return err
	}
	c.mu.Lock()
	h, stream := c.handle, c.stream
	c.mu.Unlock()

	if err := c.svc.Unpublish(ctx, h, stream); err != nil {
		log.Warn().Str("module", "orch").Str("stream", stream.ID()).Err(err).Msg("unpublish failed")
		return c.finish(trig, domain.StatePublished, opError(trig, domain.ErrUnpublishFailed, domain.StatePublished, err))
	}
	log.Info().Str("module", "orch").Str("stream", stream.ID()).Msg("unpublished")
	return c.finish(trig, domain.StateJoined, nil)
}
