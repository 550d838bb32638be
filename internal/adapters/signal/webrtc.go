package signal

import (
	"context"
	"fmt"

	"github.com/dkeye/VoiceClient/internal/adapters/rtc"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
)

func (c *Connection) sendCandidate(ci webrtc.ICECandidateInit) {
	msg := candidateMessage{
		Type:      typeCandidate,
		Candidate: ci.Candidate,
	}
	if ci.SDPMid != nil {
		msg.SDPMid = *ci.SDPMid
	}
	if ci.SDPMLineIndex != nil {
		msg.SDPMLineIndex = *ci.SDPMLineIndex
	}
	c.sendJSON(msg)
}

func (c *Connection) handleCandidate(msg inbound) {
	cand := webrtc.ICECandidateInit{Candidate: msg.Candidate}
	if msg.SDPMid != "" {
		cand.SDPMid = &msg.SDPMid
	}
	cand.SDPMLineIndex = &msg.SDPMLineIndex
	if err := c.peer.AddICECandidate(cand); err != nil {
		c.log.Error().Err(err).Msg("add ice candidate")
	}
}

// negotiate runs one offer/answer round with the service.
func (c *Connection) negotiate(ctx context.Context, action string) error {
	offer, err := c.peer.CreateOffer(ctx)
	if err != nil {
		return err
	}
	req := offerRequest{Type: typeOffer, ID: uuid.NewString(), SDP: offer.SDP, Action: action}
	reply, err := c.request(ctx, req.ID, typeOffer, req)
	if err != nil {
		return err
	}
	if err := c.peer.ApplyAnswer(reply.SDP); err != nil {
		return err
	}
	c.log.Info().Str("action", action).Msg("negotiated")
	return nil
}

func localStream(s core.LocalStream) (*rtc.LocalStream, error) {
	ls, ok := s.(*rtc.LocalStream)
	if !ok {
		return nil, fmt.Errorf("stream %s not created by this service", s.ID())
	}
	return ls, nil
}

func (s *Service) Publish(ctx context.Context, h core.ConnectionHandle, stream core.LocalStream) error {
	c, ok := h.(*Connection)
	if !ok {
		return ErrForeignHandle
	}
	ls, err := localStream(stream)
	if err != nil {
		return err
	}
	if err := c.peer.Publish(ls); err != nil {
		return err
	}
	if err := c.negotiate(ctx, actionPublish); err != nil {
		_ = c.peer.Unpublish(ls)
		return err
	}
	return nil
}

func (s *Service) Unpublish(ctx context.Context, h core.ConnectionHandle, stream core.LocalStream) error {
	c, ok := h.(*Connection)
	if !ok {
		return ErrForeignHandle
	}
	ls, err := localStream(stream)
	if err != nil {
		return err
	}
	if err := c.peer.Unpublish(ls); err != nil {
		return err
	}
	if err := c.negotiate(ctx, actionUnpublish); err != nil {
		_ = c.peer.Publish(ls)
		return err
	}
	return nil
}
