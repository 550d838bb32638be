package orch

import (
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
)

type fakeHandle struct {
	mu      sync.Mutex
	id      string
	uid     domain.ParticipantID
	fn      func(core.RemoteEvent)
	onClose func(error)
}

func (h *fakeHandle) ID() string                        { return h.id }
func (h *fakeHandle) Participant() domain.ParticipantID { return h.uid }

func (h *fakeHandle) OnEvent(fn func(core.RemoteEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.fn = nil
	}
}

func (h *fakeHandle) OnClosed(fn func(error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClose = fn
}

func (h *fakeHandle) emit(ev core.RemoteEvent) {
	h.mu.Lock()
	fn := h.fn
	h.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func (h *fakeHandle) lose(err error) {
	h.mu.Lock()
	fn := h.onClose
	h.onClose = nil
	h.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

type fakeStream struct {
	mu     sync.Mutex
	id     string
	spec   core.StreamSpec
	closes int
}

func (s *fakeStream) ID() string            { return s.id }
func (s *fakeStream) Spec() core.StreamSpec { return s.spec }

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *fakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes > 0
}

type staticConfig domain.SessionConfig

func (c *staticConfig) Current() domain.SessionConfig { return domain.SessionConfig(*c) }
