package core

import "github.com/dkeye/VoiceClient/internal/domain"

type EventKind string

const (
	EventStreamAdded     EventKind = "participant-stream-added"
	EventStreamRemoved   EventKind = "participant-stream-removed"
	EventParticipantLeft EventKind = "participant-left"
)

// RemoteEvent is one remote-participant lifecycle notification.
// Stream is only set for EventStreamAdded.
type RemoteEvent struct {
	Kind        EventKind
	Participant domain.ParticipantID
	Stream      RemoteStream
}

// ConnectionHandle is an active connection to the service.
type ConnectionHandle interface {
	ID() string
	// Participant is the id the service settled on for the local participant.
	Participant() domain.ParticipantID
	// OnEvent installs the event feed handler. Events are delivered one at a time,
	// in arrival order. cancel stops delivery to fn.
	OnEvent(fn func(RemoteEvent)) (cancel func())
	// OnClosed is called once if the connection ends without Disconnect.
	// Installed after such an end, fn is called at once.
	OnClosed(fn func(err error))
}
