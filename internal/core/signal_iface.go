//go:generate go run go.uber.org/mock/mockgen -source=signal_iface.go -destination=../mocks/mock_signal.go -package=mocks
package core

import (
	"context"

	"github.com/dkeye/VoiceClient/internal/domain"
)

// ConnectParams is what the service needs to join a channel.
// A nil Participant asks the service to assign an id.
type ConnectParams struct {
	AppID       string
	Channel     string
	Token       string
	Participant *domain.ParticipantID
	Mode        domain.TransportMode
	Codec       domain.Codec
}

// ConnectionService performs the network side of a session.
// Implementations own no session state; the controller owns every handle and stream they return.
type ConnectionService interface {
	Connect(ctx context.Context, params ConnectParams) (ConnectionHandle, error)
	Disconnect(ctx context.Context, h ConnectionHandle) error
	Publish(ctx context.Context, h ConnectionHandle, s LocalStream) error
	Unpublish(ctx context.Context, h ConnectionHandle, s LocalStream) error
	CreateLocalStream(ctx context.Context, spec StreamSpec) (LocalStream, error)
}
