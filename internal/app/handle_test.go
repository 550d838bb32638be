package app

import (
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
)

type fakeHandle struct {
	mu       sync.Mutex
	id       string
	fn       func(core.RemoteEvent)
	canceled int
}

func (h *fakeHandle) ID() string                        { return h.id }
func (h *fakeHandle) Participant() domain.ParticipantID { return 1 }
func (h *fakeHandle) OnClosed(func(error))              {}

func (h *fakeHandle) OnEvent(fn func(core.RemoteEvent)) func() {
	h.mu.Lock()
	h.fn = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		h.canceled++
		h.mu.Unlock()
	}
}

// emit delivers ev even after cancel, like a feed that has not drained yet.
func (h *fakeHandle) emit(ev core.RemoteEvent) {
	h.mu.Lock()
	fn := h.fn
	h.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func added(id domain.ParticipantID, stream string) core.RemoteEvent {
	return core.RemoteEvent{
		Kind:        core.EventStreamAdded,
		Participant: id,
		Stream:      core.RemoteStream{StreamID: stream, Kinds: []core.MediaKind{core.MediaAudio, core.MediaVideo}},
	}
}

func removed(id domain.ParticipantID) core.RemoteEvent {
	return core.RemoteEvent{Kind: core.EventStreamRemoved, Participant: id}
}

func left(id domain.ParticipantID) core.RemoteEvent {
	return core.RemoteEvent{Kind: core.EventParticipantLeft, Participant: id}
}
