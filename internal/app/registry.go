package app

import (
	"slices"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/metrics"
	"github.com/rs/zerolog/log"
)

// RemoteStreamRegistry tracks which remote participants are currently publishing.
// Events are applied synchronously, so a Snapshot taken after an event has been
// delivered always reflects it.
type RemoteStreamRegistry struct {
	mu      sync.RWMutex
	streams map[domain.ParticipantID]core.RemoteStream
	gen     uint64
	cancel  func()

	onChange func(count int)
}

func NewRemoteStreamRegistry(onChange func(count int)) *RemoteStreamRegistry {
	return &RemoteStreamRegistry{
		streams:  make(map[domain.ParticipantID]core.RemoteStream),
		onChange: onChange,
	}
}

// Attach starts consuming h's event feed. Any previous subscription is dropped first.
func (r *RemoteStreamRegistry) Attach(h core.ConnectionHandle) {
	r.Detach()

	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	cancel := h.OnEvent(func(ev core.RemoteEvent) { r.apply(gen, ev) })

	r.mu.Lock()
	if r.gen == gen {
		r.cancel = cancel
		cancel = nil
	}
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	log.Info().Str("module", "app.registry").Str("conn", h.ID()).Msg("subscribed to remote events")
}

// Detach stops the subscription and forgets every remote stream.
func (r *RemoteStreamRegistry) Detach() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.gen++
	had := len(r.streams)
	clear(r.streams)
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		log.Info().Str("module", "app.registry").Int("dropped", had).Msg("unsubscribed from remote events")
	}
	if had > 0 {
		r.changed(0)
	}
}

// Apply folds a single event into the registry.
func (r *RemoteStreamRegistry) Apply(ev core.RemoteEvent) {
	r.mu.RLock()
	gen := r.gen
	r.mu.RUnlock()
	r.apply(gen, ev)
}

func (r *RemoteStreamRegistry) apply(gen uint64, ev core.RemoteEvent) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		log.Debug().Str("module", "app.registry").Str("kind", string(ev.Kind)).Msg("stale event dropped")
		return
	}
	changed := false
	switch ev.Kind {
	case core.EventStreamAdded:
		stream := ev.Stream
		stream.Participant = ev.Participant
		stream.Kinds = slices.Clone(stream.Kinds)
		r.streams[ev.Participant] = stream
		changed = true
	case core.EventStreamRemoved, core.EventParticipantLeft:
		if _, ok := r.streams[ev.Participant]; ok {
			delete(r.streams, ev.Participant)
			changed = true
		}
	default:
		r.mu.Unlock()
		log.Warn().Str("module", "app.registry").Str("kind", string(ev.Kind)).Msg("unknown remote event")
		return
	}
	count := len(r.streams)
	r.mu.Unlock()

	metrics.RemoteEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	log.Debug().
		Str("module", "app.registry").
		Str("kind", string(ev.Kind)).
		Str("participant", ev.Participant.String()).
		Int("count", count).
		Msg("remote event applied")
	if changed {
		r.changed(count)
	}
}

func (r *RemoteStreamRegistry) changed(count int) {
	metrics.RemoteStreams.Set(float64(count))
	if r.onChange != nil {
		r.onChange(count)
	}
}

// Snapshot returns a copy of the current streams ordered by participant id.
func (r *RemoteStreamRegistry) Snapshot() []core.RemoteStream {
	r.mu.RLock()
	out := make([]core.RemoteStream, 0, len(r.streams))
	for _, s := range r.streams {
		s.Kinds = slices.Clone(s.Kinds)
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b core.RemoteStream) int {
		switch {
		case a.Participant < b.Participant:
			return -1
		case a.Participant > b.Participant:
			return 1
		}
		return 0
	})
	return out
}

func (r *RemoteStreamRegistry) Get(id domain.ParticipantID) (core.RemoteStream, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.streams[id]
	if ok {
		s.Kinds = slices.Clone(s.Kinds)
	}
	return s, ok
}

func (r *RemoteStreamRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}
