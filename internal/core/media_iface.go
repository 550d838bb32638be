package core

import "github.com/dkeye/VoiceClient/internal/domain"

type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// StreamSpec are the constraints for creating a local stream.
type StreamSpec struct {
	Participant  domain.ParticipantID
	Video        bool
	Audio        bool
	Screen       bool
	CameraID     string
	MicrophoneID string
}

// LocalStream is the local participant's outgoing media.
type LocalStream interface {
	ID() string
	Spec() StreamSpec
	// Close releases capture resources. Closing twice is a no-op.
	Close() error
	Closed() bool
}

// RemoteStream is what the registry keeps per remote publisher.
type RemoteStream struct {
	Participant domain.ParticipantID `json:"participant"`
	StreamID    string               `json:"stream_id"`
	Kinds       []MediaKind          `json:"kinds"`
}
