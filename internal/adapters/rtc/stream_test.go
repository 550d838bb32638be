package rtc

import (
	"testing"
	"time"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/stretchr/testify/require"
)

func TestLocalStream_Tracks(t *testing.T) {
	req := require.New(t)
	s, err := NewLocalStream(core.StreamSpec{Participant: 4, Audio: true, Video: true, CameraID: "cam0", MicrophoneID: "mic0"})
	req.NoError(err)
	req.NotEmpty(s.ID())

	// When tracks are requested for vp8
	tracks, err := s.Tracks(domain.CodecVP8)

	// Then one audio and one video track exist, both in the stream
	req.NoError(err)
	req.Len(tracks, 2)
	req.Equal("audio-mic0", tracks[0].ID())
	req.Equal(webrtc.MimeTypeOpus, tracks[0].Codec().MimeType)
	req.Equal("video-cam0", tracks[1].ID())
	req.Equal(webrtc.MimeTypeVP8, tracks[1].Codec().MimeType)
	req.Equal(s.ID(), tracks[1].StreamID())

	// And asking again returns the same tracks
	again, err := s.Tracks(domain.CodecVP8)
	req.NoError(err)
	req.Same(tracks[0], again[0])
}

func TestLocalStream_Audio_Only(t *testing.T) {
	req := require.New(t)
	s, err := NewLocalStream(core.StreamSpec{Audio: true})
	req.NoError(err)

	tracks, err := s.Tracks(domain.CodecH264)
	req.NoError(err)
	req.Len(tracks, 1)

	err = s.WriteSample(core.MediaVideo, media.Sample{Data: []byte{0}, Duration: time.Millisecond})
	req.ErrorIs(err, ErrNoTrack)
}

func TestLocalStream_Needs_Media(t *testing.T) {
	_, err := NewLocalStream(core.StreamSpec{})
	require.Error(t, err)
}

func TestLocalStream_Close(t *testing.T) {
	req := require.New(t)
	s, err := NewLocalStream(core.StreamSpec{Audio: true, Video: true})
	req.NoError(err)
	_, err = s.Tracks(domain.CodecH264)
	req.NoError(err)

	req.NoError(s.Close())
	req.NoError(s.Close())

	req.True(s.Closed())
	_, err = s.Tracks(domain.CodecH264)
	req.ErrorIs(err, ErrStreamClosed)
	req.ErrorIs(s.WriteSample(core.MediaAudio, media.Sample{}), ErrStreamClosed)
}

func TestLocalStream_Unbound_Write_Is_Dropped(t *testing.T) {
	req := require.New(t)
	s, err := NewLocalStream(core.StreamSpec{Audio: true})
	req.NoError(err)
	_, err = s.Tracks(domain.CodecH264)
	req.NoError(err)

	// A track not yet bound to any peer accepts and discards samples
	req.NoError(s.WriteSample(core.MediaAudio, media.Sample{Data: []byte{1, 2, 3}, Duration: 20 * time.Millisecond}))
}
