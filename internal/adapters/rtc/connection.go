package rtc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/metrics"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Peer is the media side of one signaling connection.
type Peer struct {
	pc     *webrtc.PeerConnection
	codec  domain.Codec
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	senders  map[string][]*webrtc.RTPSender
	onICE    func(webrtc.ICECandidateInit)
	onTrack  func(track *webrtc.TrackRemote)
	onClosed func()
	closed   bool
}

func NewPeer(api *webrtc.API, cfg webrtc.Configuration, codec domain.Codec, connID string) (*Peer, error) {
	pc, err := api.NewPeerConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Peer{
		pc:      pc,
		codec:   codec,
		log:     log.With().Str("module", "rtc").Str("conn", connID).Logger(),
		ctx:     ctx,
		cancel:  cancel,
		senders: make(map[string][]*webrtc.RTPSender),
	}, nil
}

// Start wires peer callbacks and adds receive-only transceivers so remote
// media flows before anything is published.
func (p *Peer) Start() error {
	p.pc.OnICEConnectionStateChange(func(s webrtc.ICEConnectionState) {
		p.log.Info().Str("ice_state", s.String()).Msg("ICE state")
	})

	p.pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		p.log.Info().Str("peer_connection_state", s.String()).Msg("Peer state")
		if s == webrtc.PeerConnectionStateFailed {
			p.mu.Lock()
			fn := p.onClosed
			p.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	})

	p.pc.OnICECandidate(func(cand *webrtc.ICECandidate) {
		if cand == nil {
			return
		}
		p.mu.Lock()
		fn := p.onICE
		p.mu.Unlock()
		if fn != nil {
			fn(cand.ToJSON())
		}
	})

	p.pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		p.log.Info().
			Str("kind", track.Kind().String()).
			Str("track_id", track.ID()).
			Str("stream_id", track.StreamID()).
			Msg("OnTrack received")
		p.mu.Lock()
		fn := p.onTrack
		p.mu.Unlock()
		if fn != nil {
			fn(track)
			return
		}
		go p.drain(track)
	})

	for _, kind := range []webrtc.RTPCodecType{webrtc.RTPCodecTypeAudio, webrtc.RTPCodecTypeVideo} {
		if _, err := p.pc.AddTransceiverFromKind(kind, webrtc.RTPTransceiverInit{
			Direction: webrtc.RTPTransceiverDirectionRecvonly,
		}); err != nil {
			return fmt.Errorf("add %s transceiver: %w", kind, err)
		}
	}
	return nil
}

// drain reads a remote track until it ends, accounting for lost packets.
// Rendering is not done here.
func (p *Peer) drain(track *webrtc.TrackRemote) {
	var seq SequenceTracker
	for {
		if p.ctx.Err() != nil {
			return
		}
		pkt, _, err := track.ReadRTP()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.log.Debug().Err(err).Str("track_id", track.ID()).Msg("remote track read")
			}
			break
		}
		metrics.RTPPacketsTotal.Inc()
		if missing := seq.Observe(pkt); missing > 0 {
			metrics.RTPGapsTotal.Add(float64(missing))
		}
	}
	p.log.Info().
		Str("track_id", track.ID()).
		Uint64("received", seq.Received).
		Uint64("lost", seq.Lost).
		Msg("remote track ended")
}

// CreateOffer returns a complete offer once ICE gathering has finished.
func (p *Peer) CreateOffer(ctx context.Context) (*webrtc.SessionDescription, error) {
	offer, err := p.pc.CreateOffer(nil)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	gatherComplete := webrtc.GatheringCompletePromise(p.pc)
	if err := p.pc.SetLocalDescription(offer); err != nil {
		return nil, fmt.Errorf("set local description: %w", err)
	}
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.pc.LocalDescription(), nil
}

func (p *Peer) ApplyAnswer(sdp string) error {
	if err := p.pc.SetRemoteDescription(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: sdp}); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	return nil
}

func (p *Peer) AddICECandidate(ci webrtc.ICECandidateInit) error {
	return p.pc.AddICECandidate(ci)
}

// Publish adds the stream's tracks to the connection. A renegotiation must follow.
func (p *Peer) Publish(s *LocalStream) error {
	tracks, err := s.Tracks(p.codec)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.senders[s.ID()]; ok {
		return nil
	}
	senders := make([]*webrtc.RTPSender, 0, len(tracks))
	for _, t := range tracks {
		sender, err := p.pc.AddTrack(t)
		if err != nil {
			for _, added := range senders {
				_ = p.pc.RemoveTrack(added)
			}
			return fmt.Errorf("add track %s: %w", t.ID(), err)
		}
		senders = append(senders, sender)
		go readRTCP(sender)
	}
	p.senders[s.ID()] = senders
	p.log.Info().Str("stream", s.ID()).Int("tracks", len(senders)).Msg("local tracks added")
	return nil
}

// Unpublish removes the stream's tracks. A renegotiation must follow.
func (p *Peer) Unpublish(s *LocalStream) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	senders, ok := p.senders[s.ID()]
	if !ok {
		return nil
	}
	delete(p.senders, s.ID())
	var errs []error
	for _, sender := range senders {
		if err := p.pc.RemoveTrack(sender); err != nil {
			errs = append(errs, err)
		}
	}
	p.log.Info().Str("stream", s.ID()).Msg("local tracks removed")
	return errors.Join(errs...)
}

// readRTCP keeps interceptors fed; pion needs sender RTCP to be read.
func readRTCP(sender *webrtc.RTPSender) {
	buf := make([]byte, 1500)
	for {
		if _, _, err := sender.Read(buf); err != nil {
			return
		}
	}
}

func (p *Peer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.onClosed = nil
	p.mu.Unlock()

	p.cancel()
	if err := p.pc.Close(); err != nil {
		p.log.Error().Err(err).Msg("close error")
	} else {
		p.log.Info().Msg("closed")
	}
}

func (p *Peer) OnICECandidate(fn func(webrtc.ICECandidateInit)) {
	p.mu.Lock()
	p.onICE = fn
	p.mu.Unlock()
}

// OnTrack replaces the default drain for remote tracks.
func (p *Peer) OnTrack(fn func(track *webrtc.TrackRemote)) {
	p.mu.Lock()
	p.onTrack = fn
	p.mu.Unlock()
}

// OnClosed is called when the peer connection fails. It is not called after Close.
func (p *Peer) OnClosed(fn func()) {
	p.mu.Lock()
	p.onClosed = fn
	p.mu.Unlock()
}
