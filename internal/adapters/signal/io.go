package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkeye/VoiceClient/internal/metrics"
	"github.com/gorilla/websocket"
)

func (c *Connection) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			c.log.Debug().Msg("writePump ctx done")
			return
		case <-ticker.C:
			c.sendJSON(struct {
				Type string `json:"type"`
			}{Type: typePing})
		case data, ok := <-c.send:
			if !ok {
				c.log.Debug().Msg("writePump channel closed")
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.Error().Err(err).Msg("writePump set deadline")
				c.shutdown(err)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Error().Err(err).Msg("writePump write error")
				c.shutdown(err)
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.log.Error().Err(err).Msg("readPump read error")
			c.shutdown(fmt.Errorf("signal read: %w", err))
			return
		}
		c.handleSignal(data)
	}
}

func (c *Connection) handleSignal(data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		c.log.Error().Err(err).Msg("bad json")
		return
	}
	metrics.SignalMessagesTotal.WithLabelValues("in", msg.Type).Inc()

	switch msg.Type {
	case typeJoined, typeAnswer, typeLeft:
		c.resolve(msg)
	case typeError:
		if msg.ID == "" {
			c.log.Warn().Str("error", msg.Error).Msg("service error")
			return
		}
		c.resolve(msg)
	case typeCandidate:
		c.handleCandidate(msg)
	case typeStreamAdded, typeStreamRemoved, typeMemberLeft:
		c.handleRemote(msg)
	case typePong:
		c.handlePong()
	default:
		c.log.Warn().Str("type", msg.Type).Msg("unknown signal")
	}
}

func (c *Connection) sendJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error().Err(err).Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		c.log.Warn().Err(err).Msg("sendJSON")
	}
}

// request sends v and waits for the reply carrying the same id.
func (c *Connection) request(ctx context.Context, id, kind string, v any) (inbound, error) {
	ch := make(chan inbound, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return inbound{}, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	b, err := json.Marshal(v)
	if err != nil {
		return inbound{}, fmt.Errorf("marshal %s: %w", kind, err)
	}
	if err := c.TrySend(b); err != nil {
		return inbound{}, fmt.Errorf("send %s: %w", kind, err)
	}
	metrics.SignalMessagesTotal.WithLabelValues("out", kind).Inc()

	select {
	case <-ctx.Done():
		return inbound{}, fmt.Errorf("%s: %w", kind, ctx.Err())
	case reply, ok := <-ch:
		if !ok {
			return inbound{}, fmt.Errorf("%s: %w", kind, ErrClosed)
		}
		if reply.Type == typeError {
			return reply, fmt.Errorf("%s rejected: %s", kind, reply.Error)
		}
		return reply, nil
	}
}

// resolve hands msg to the waiting request. The send happens under the read
// lock so shutdown cannot close the channel underneath it.
func (c *Connection) resolve(msg inbound) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.pending[msg.ID]
	if !ok {
		c.log.Debug().Str("type", msg.Type).Str("id", msg.ID).Msg("reply without request")
		return
	}
	select {
	case ch <- msg:
	default:
	}
}
