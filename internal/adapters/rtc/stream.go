package rtc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog/log"
)

var (
	ErrStreamClosed = errors.New("local stream closed")
	ErrNoTrack      = errors.New("no track for media kind")
)

// LocalStream is the outgoing media of the local participant. Tracks are created
// on first use with the codec of the session that publishes them; capture sources
// feed them through WriteSample.
type LocalStream struct {
	id   string
	spec core.StreamSpec

	mu     sync.Mutex
	codec  domain.Codec
	tracks map[core.MediaKind]*webrtc.TrackLocalStaticSample
	closed bool
}

func NewLocalStream(spec core.StreamSpec) (*LocalStream, error) {
	if !spec.Audio && !spec.Video && !spec.Screen {
		return nil, errors.New("stream needs audio or video")
	}
	return &LocalStream{
		id:     uuid.NewString(),
		spec:   spec,
		tracks: make(map[core.MediaKind]*webrtc.TrackLocalStaticSample),
	}, nil
}

func (s *LocalStream) ID() string            { return s.id }
func (s *LocalStream) Spec() core.StreamSpec { return s.spec }

// Tracks returns the stream's tracks for codec, creating them if needed.
func (s *LocalStream) Tracks(codec domain.Codec) ([]*webrtc.TrackLocalStaticSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStreamClosed
	}
	if s.codec != "" && s.codec != codec {
		clear(s.tracks)
	}
	s.codec = codec

	if s.spec.Audio {
		if _, ok := s.tracks[core.MediaAudio]; !ok {
			t, err := webrtc.NewTrackLocalStaticSample(AudioCapability(), trackID(core.MediaAudio, s.spec.MicrophoneID), s.id)
			if err != nil {
				return nil, fmt.Errorf("create audio track: %w", err)
			}
			s.tracks[core.MediaAudio] = t
		}
	}
	if s.spec.Video || s.spec.Screen {
		if _, ok := s.tracks[core.MediaVideo]; !ok {
			capability, err := VideoCapability(codec)
			if err != nil {
				return nil, err
			}
			source := s.spec.CameraID
			if s.spec.Screen {
				source = "screen"
			}
			t, err := webrtc.NewTrackLocalStaticSample(capability, trackID(core.MediaVideo, source), s.id)
			if err != nil {
				return nil, fmt.Errorf("create video track: %w", err)
			}
			s.tracks[core.MediaVideo] = t
		}
	}

	out := make([]*webrtc.TrackLocalStaticSample, 0, len(s.tracks))
	for _, kind := range []core.MediaKind{core.MediaAudio, core.MediaVideo} {
		if t, ok := s.tracks[kind]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// WriteSample sends one encoded sample on the track of the given kind.
func (s *LocalStream) WriteSample(kind core.MediaKind, sample media.Sample) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	t, ok := s.tracks[kind]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoTrack, kind)
	}
	return t.WriteSample(sample)
}

func (s *LocalStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	clear(s.tracks)
	log.Debug().Str("module", "rtc.stream").Str("stream", s.id).Msg("closed")
	return nil
}

func (s *LocalStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func trackID(kind core.MediaKind, device string) string {
	if device == "" {
		return string(kind)
	}
	return string(kind) + "-" + device
}
