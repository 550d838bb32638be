package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventFeed streams session notifications to websocket observers.
type eventFeed struct {
	sess       Session
	configs    Configs
	pingPeriod time.Duration
	readLimit  int64
}

type feedMessage struct {
	Type         string            `json:"type"`
	Notification *app.Notification `json:"notification,omitempty"`
	Session      sessionView       `json:"session"`
}

type feedConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *feedConn) trySend(data []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *feedConn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (f *eventFeed) serve(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("ws upgrade")
		return
	}
	if f.readLimit > 0 {
		ws.SetReadLimit(f.readLimit)
	}
	conn := &feedConn{conn: ws, send: make(chan []byte, 32)}
	metrics.EventSubscribers.Inc()
	log.Info().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("event feed connected")

	push := func(n *app.Notification) {
		b, err := json.Marshal(feedMessage{
			Type:         "session",
			Notification: n,
			Session:      viewOf(f.sess, f.configs),
		})
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("feed marshal")
			return
		}
		if !conn.trySend(b) {
			log.Debug().Str("module", "adapters.http").Msg("feed backpressure, dropped")
		}
	}
	unsubscribe := f.sess.Subscribe(func(n app.Notification) { push(&n) })
	push(nil)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer func() {
			cancel()
			unsubscribe()
			conn.close()
			metrics.EventSubscribers.Dec()
			log.Info().Str("module", "adapters.http").Msg("event feed closed")
		}()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
	go f.writePump(ctx, conn)
}

func (f *eventFeed) writePump(ctx context.Context, c *feedConn) {
	period := f.pingPeriod
	if period <= 0 {
		period = 30 * time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.close()
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
