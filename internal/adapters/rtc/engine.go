package rtc

import (
	"fmt"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/interceptor/pkg/nack"
	"github.com/pion/webrtc/v4"
)

const (
	opusPayloadType = 111
	h264PayloadType = 102
	vp8PayloadType  = 96
)

// VideoCapability returns the video codec used for the given preference.
func VideoCapability(codec domain.Codec) (webrtc.RTPCodecCapability, error) {
	switch codec {
	case domain.CodecH264:
		return webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeH264,
			ClockRate:   90000,
			SDPFmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f",
		}, nil
	case domain.CodecVP8:
		return webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000}, nil
	default:
		return webrtc.RTPCodecCapability{}, fmt.Errorf("unsupported codec %q", codec)
	}
}

// AudioCapability is the audio codec for every session.
func AudioCapability() webrtc.RTPCodecCapability {
	return webrtc.RTPCodecCapability{
		MimeType:    webrtc.MimeTypeOpus,
		ClockRate:   48000,
		Channels:    2,
		SDPFmtpLine: "minptime=10;useinbandfec=1",
	}
}

// NewAPI builds a pion API that only offers opus and the preferred video codec,
// with NACK generation and response enabled.
func NewAPI(codec domain.Codec) (*webrtc.API, error) {
	video, err := VideoCapability(codec)
	if err != nil {
		return nil, err
	}
	pt := webrtc.PayloadType(h264PayloadType)
	if codec == domain.CodecVP8 {
		pt = vp8PayloadType
	}

	m := &webrtc.MediaEngine{}
	if err := m.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: AudioCapability(),
		PayloadType:        opusPayloadType,
	}, webrtc.RTPCodecTypeAudio); err != nil {
		return nil, fmt.Errorf("register opus: %w", err)
	}
	video.RTCPFeedback = []webrtc.RTCPFeedback{{Type: "nack"}, {Type: "nack", Parameter: "pli"}}
	if err := m.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: video,
		PayloadType:        pt,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		return nil, fmt.Errorf("register %s: %w", codec, err)
	}

	ir := &interceptor.Registry{}
	responder, err := nack.NewResponderInterceptor()
	if err != nil {
		return nil, fmt.Errorf("create nack responder: %w", err)
	}
	ir.Add(responder)
	generator, err := nack.NewGeneratorInterceptor()
	if err != nil {
		return nil, fmt.Errorf("create nack generator: %w", err)
	}
	ir.Add(generator)

	return webrtc.NewAPI(
		webrtc.WithMediaEngine(m),
		webrtc.WithInterceptorRegistry(ir),
	), nil
}

// Configuration turns configured ICE server URLs into a peer configuration.
func Configuration(iceServers []string) webrtc.Configuration {
	cfg := webrtc.Configuration{BundlePolicy: webrtc.BundlePolicyMaxBundle}
	if len(iceServers) > 0 {
		cfg.ICEServers = []webrtc.ICEServer{{URLs: iceServers}}
	}
	return cfg
}
