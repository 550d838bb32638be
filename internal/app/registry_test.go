package app

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/stretchr/testify/require"
)

func ids(streams []core.RemoteStream) []domain.ParticipantID {
	out := make([]domain.ParticipantID, 0, len(streams))
	for _, s := range streams {
		out = append(out, s.Participant)
	}
	return out
}

func TestRegistry_Added_Then_Left(t *testing.T) {
	req := require.New(t)
	registry := NewRemoteStreamRegistry(nil)
	h := &fakeHandle{id: "conn-1"}
	registry.Attach(h)

	// Given participant 7 publishes
	h.emit(added(7, "streamA"))
	req.Len(registry.Snapshot(), 1)

	// When participant 7 leaves
	h.emit(left(7))

	// Then the snapshot is empty
	req.Empty(registry.Snapshot())
}

func TestRegistry_Duplicate_Added_Replaces(t *testing.T) {
	req := require.New(t)
	registry := NewRemoteStreamRegistry(nil)
	h := &fakeHandle{id: "conn-1"}
	registry.Attach(h)

	h.emit(added(3, "first"))
	h.emit(added(3, "second"))

	snap := registry.Snapshot()
	req.Len(snap, 1)
	req.Equal("second", snap[0].StreamID)
	req.Equal(domain.ParticipantID(3), snap[0].Participant)
}

func TestRegistry_Remove_Unknown_Is_Noop(t *testing.T) {
	req := require.New(t)
	changes := 0
	registry := NewRemoteStreamRegistry(func(int) { changes++ })
	h := &fakeHandle{id: "conn-1"}
	registry.Attach(h)

	h.emit(removed(99))
	h.emit(left(99))

	req.Empty(registry.Snapshot())
	req.Zero(changes)
}

func TestRegistry_Snapshot_Sorted_And_Detached_From_State(t *testing.T) {
	req := require.New(t)
	registry := NewRemoteStreamRegistry(nil)
	h := &fakeHandle{id: "conn-1"}
	registry.Attach(h)

	for _, id := range []domain.ParticipantID{30, 2, 11} {
		h.emit(added(id, "s"))
	}

	snap := registry.Snapshot()
	req.Equal([]domain.ParticipantID{2, 11, 30}, ids(snap))

	// Mutating the snapshot does not reach the registry
	snap[0].Kinds[0] = "smell"
	got, ok := registry.Get(2)
	req.True(ok)
	req.Equal(core.MediaAudio, got.Kinds[0])
}

func TestRegistry_Detach_Clears_And_Drops_Late_Events(t *testing.T) {
	req := require.New(t)
	var counts []int
	registry := NewRemoteStreamRegistry(func(n int) { counts = append(counts, n) })
	h := &fakeHandle{id: "conn-1"}
	registry.Attach(h)
	h.emit(added(1, "a"))
	h.emit(added(2, "b"))

	// When the registry detaches
	registry.Detach()

	// Then it is empty and the subscription is canceled
	req.Zero(registry.Len())
	req.Equal(1, h.canceled)
	req.Equal([]int{1, 2, 0}, counts)

	// And an event still in flight from the old feed is ignored
	h.emit(added(3, "c"))
	req.Zero(registry.Len())
}

func TestRegistry_Reattach_Ignores_Previous_Handle(t *testing.T) {
	req := require.New(t)
	registry := NewRemoteStreamRegistry(nil)
	first := &fakeHandle{id: "conn-1"}
	second := &fakeHandle{id: "conn-2"}

	registry.Attach(first)
	first.emit(added(1, "a"))
	registry.Attach(second)

	req.Zero(registry.Len())
	first.emit(added(2, "b"))
	second.emit(added(3, "c"))

	req.Equal([]domain.ParticipantID{3}, ids(registry.Snapshot()))
	req.Equal(1, first.canceled)
}

// The key set always equals the ids with an outstanding added event.
func TestRegistry_Matches_Model_For_Random_Sequences(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		registry := NewRemoteStreamRegistry(nil)
		h := &fakeHandle{id: "conn"}
		registry.Attach(h)
		model := map[domain.ParticipantID]bool{}

		for step := 0; step < 50; step++ {
			id := domain.ParticipantID(rng.Intn(8))
			switch rng.Intn(3) {
			case 0:
				h.emit(added(id, "s"))
				model[id] = true
			case 1:
				h.emit(removed(id))
				delete(model, id)
			case 2:
				h.emit(left(id))
				delete(model, id)
			}

			want := make([]domain.ParticipantID, 0, len(model))
			for k := range model {
				want = append(want, k)
			}
			slices.Sort(want)
			req.Equal(want, ids(registry.Snapshot()), "round %d step %d", round, step)
		}
	}
}
