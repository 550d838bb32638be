package signal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/VoiceClient/internal/adapters/rtc"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure  = errors.New("backpressure")
	ErrClosed        = errors.New("connection closed")
	ErrForeignHandle = errors.New("handle not created by this service")
)

const (
	sendBuffer        = 32
	writeWait         = 5 * time.Second
	defaultPingPeriod = 20 * time.Second
	defaultReadLimit  = 1 << 20
)

type Options struct {
	URL        string
	ICEServers []string
	PingPeriod time.Duration
	ReadLimit  int64
	Dialer     *websocket.Dialer
}

// Service connects to the signaling server over a websocket and carries media
// over a pion peer connection. Every Connect builds a fresh socket and peer.
type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = defaultPingPeriod
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = defaultReadLimit
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Service{opts: opts}
}

// Connection is the ConnectionHandle of the signal service.
type Connection struct {
	id    string
	ws    *websocket.Conn
	peer  *rtc.Peer
	send  chan []byte
	log   zerolog.Logger
	codec domain.Codec

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	closed   bool
	cause    error
	uid      domain.ParticipantID
	pending  map[string]chan inbound
	onClosed func(error)

	evMu     sync.Mutex
	onEvent  func(core.RemoteEvent)
	evGen    uint64
	attached bool
	backlog  []core.RemoteEvent

	closeOnce sync.Once
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) Participant() domain.ParticipantID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uid
}

// OnEvent installs fn and replays any events that arrived before it.
func (c *Connection) OnEvent(fn func(core.RemoteEvent)) (cancel func()) {
	c.evMu.Lock()
	c.evGen++
	gen := c.evGen
	c.onEvent = fn
	backlog := c.backlog
	c.backlog = nil
	c.attached = true
	for _, ev := range backlog {
		fn(ev)
	}
	c.evMu.Unlock()

	return func() {
		c.evMu.Lock()
		if c.evGen == gen {
			c.onEvent = nil
		}
		c.evMu.Unlock()
	}
}

// OnClosed installs fn. A connection that was already lost reports at once.
func (c *Connection) OnClosed(fn func(err error)) {
	c.mu.Lock()
	if c.closed {
		cause := c.cause
		c.mu.Unlock()
		if cause != nil {
			fn(cause)
		}
		return
	}
	c.onClosed = fn
	c.mu.Unlock()
}

func (c *Connection) emit(ev core.RemoteEvent) {
	c.evMu.Lock()
	defer c.evMu.Unlock()
	if c.onEvent != nil {
		c.onEvent(ev)
		return
	}
	if !c.attached {
		c.backlog = append(c.backlog, ev)
	}
}

func (c *Connection) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

// shutdown releases the socket and the peer. cause is reported through
// OnClosed unless the shutdown was asked for. The callback runs after the
// close completes so it may call Disconnect.
func (c *Connection) shutdown(cause error) {
	var onClosed func(error)
	c.closeOnce.Do(func() {
		onClosed = c.markClosed(cause)

		c.cancel()
		_ = c.ws.Close()
		c.peer.Close()

		if cause != nil {
			c.log.Warn().Err(cause).Msg("connection lost")
			return
		}
		c.log.Info().Msg("connection closed")
	})
	if onClosed != nil {
		onClosed(cause)
	}
}

// markClosed fails every pending request and returns the OnClosed callback
// owed for cause, if any.
func (c *Connection) markClosed(cause error) func(error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cause = cause
	close(c.send)
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	onClosed := c.onClosed
	c.onClosed = nil
	if cause == nil {
		return nil
	}
	return onClosed
}

func (s *Service) Connect(ctx context.Context, params core.ConnectParams) (core.ConnectionHandle, error) {
	header := http.Header{}
	if params.Token != "" {
		header.Set("Authorization", "Bearer "+params.Token)
	}
	ws, _, err := s.opts.Dialer.DialContext(ctx, s.opts.URL, header)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	ws.SetReadLimit(s.opts.ReadLimit)

	id := uuid.NewString()
	api, err := rtc.NewAPI(params.Codec)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	peer, err := rtc.NewPeer(api, rtc.Configuration(s.opts.ICEServers), params.Codec, id)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}

	connCtx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		id:      id,
		ws:      ws,
		peer:    peer,
		send:    make(chan []byte, sendBuffer),
		log:     log.With().Str("module", "signal").Str("conn", id).Logger(),
		codec:   params.Codec,
		ctx:     connCtx,
		cancel:  cancel,
		pending: make(map[string]chan inbound),
	}
	peer.OnICECandidate(c.sendCandidate)
	peer.OnClosed(func() { c.shutdown(errors.New("peer connection failed")) })
	if err := peer.Start(); err != nil {
		c.shutdown(nil)
		return nil, err
	}

	go c.writePump(s.opts.PingPeriod)
	go c.readPump()

	if err := c.join(ctx, params); err != nil {
		c.shutdown(nil)
		return nil, err
	}
	if err := c.negotiate(ctx, actionSubscribe); err != nil {
		c.shutdown(nil)
		return nil, err
	}
	return c, nil
}

func (s *Service) Disconnect(ctx context.Context, h core.ConnectionHandle) error {
	c, ok := h.(*Connection)
	if !ok {
		return ErrForeignHandle
	}
	defer c.shutdown(nil)
	if err := c.leave(ctx); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}

func (s *Service) CreateLocalStream(_ context.Context, spec core.StreamSpec) (core.LocalStream, error) {
	ls, err := rtc.NewLocalStream(spec)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "signal").
		Str("stream", ls.ID()).
		Bool("audio", spec.Audio).
		Bool("video", spec.Video).
		Bool("screen", spec.Screen).
		Msg("local stream created")
	return ls, nil
}
