package signal

import (
	"context"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
)

func (c *Connection) join(ctx context.Context, params core.ConnectParams) error {
	req := joinRequest{
		Type:  typeJoin,
		ID:    uuid.NewString(),
		AppID: params.AppID,
		Room:  params.Channel,
		Token: params.Token,
		Mode:  string(params.Mode),
		Codec: string(params.Codec),
	}
	if params.Participant != nil {
		uid := uint32(*params.Participant)
		req.UID = &uid
	}
	reply, err := c.request(ctx, req.ID, typeJoin, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.uid = domain.ParticipantID(reply.UID)
	c.mu.Unlock()
	c.log.Info().Str("room", params.Channel).Uint32("uid", reply.UID).Msg("joined")
	return nil
}

// leave tells the service the participant is going away.
func (c *Connection) leave(ctx context.Context) error {
	req := leaveRequest{Type: typeLeave, ID: uuid.NewString()}
	if _, err := c.request(ctx, req.ID, typeLeave, req); err != nil {
		return err
	}
	c.log.Info().Msg("left")
	return nil
}

func (c *Connection) handleRemote(msg inbound) {
	ev := core.RemoteEvent{Participant: domain.ParticipantID(msg.UID)}
	switch msg.Type {
	case typeStreamAdded:
		ev.Kind = core.EventStreamAdded
		kinds := make([]core.MediaKind, 0, len(msg.Kinds))
		for _, k := range msg.Kinds {
			kinds = append(kinds, core.MediaKind(k))
		}
		ev.Stream = core.RemoteStream{Participant: ev.Participant, StreamID: msg.StreamID, Kinds: kinds}
	case typeStreamRemoved:
		ev.Kind = core.EventStreamRemoved
	case typeMemberLeft:
		ev.Kind = core.EventParticipantLeft
	}
	c.log.Debug().Str("type", msg.Type).Uint32("uid", msg.UID).Msg("remote event")
	c.emit(ev)
}
