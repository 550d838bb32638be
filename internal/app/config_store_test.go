package app

import (
	"testing"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Dispatch_Undo_Redo(t *testing.T) {
	req := require.New(t)
	store := NewConfigStore(domain.DefaultSessionConfig(), 0)

	// Given two updates
	_, err := store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: "abc"})
	req.NoError(err)
	cur, err := store.Dispatch(domain.FieldUpdate{Field: domain.FieldChannel, Value: "room1"})
	req.NoError(err)
	req.Equal("room1", cur.Channel)

	// When undoing once
	cur, ok := store.Undo()

	// Then only the last update is reverted
	req.True(ok)
	req.Equal("abc", cur.AppID)
	req.Empty(cur.Channel)

	// And redo restores it
	cur, ok = store.Redo()
	req.True(ok)
	req.Equal("room1", cur.Channel)

	_, ok = store.Redo()
	req.False(ok)
}

func TestConfigStore_Dispatch_Drops_Redo_Tail(t *testing.T) {
	req := require.New(t)
	store := NewConfigStore(domain.DefaultSessionConfig(), 0)

	_, _ = store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: "a"})
	_, _ = store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: "b"})
	store.Undo()

	_, err := store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: "c"})
	req.NoError(err)

	_, ok := store.Redo()
	req.False(ok)
	req.Equal("c", store.Current().AppID)

	cur, ok := store.Undo()
	req.True(ok)
	req.Equal("a", cur.AppID)
}

func TestConfigStore_Unknown_Field_Keeps_History(t *testing.T) {
	req := require.New(t)
	store := NewConfigStore(domain.DefaultSessionConfig(), 0)

	_, err := store.Dispatch(domain.FieldUpdate{Field: "nope", Value: "x"})

	req.ErrorIs(err, domain.ErrUnknownField)
	_, ok := store.Undo()
	req.False(ok)
}

func TestConfigStore_History_Limit(t *testing.T) {
	req := require.New(t)
	store := NewConfigStore(domain.DefaultSessionConfig(), 3)

	for _, v := range []string{"a", "b", "c", "d"} {
		_, err := store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: v})
		req.NoError(err)
	}

	// Only limit-1 steps can be undone
	cur, ok := store.Undo()
	req.True(ok)
	req.Equal("c", cur.AppID)
	cur, ok = store.Undo()
	req.True(ok)
	req.Equal("b", cur.AppID)
	_, ok = store.Undo()
	req.False(ok)
}

func TestConfigStore_Reset(t *testing.T) {
	req := require.New(t)
	store := NewConfigStore(domain.DefaultSessionConfig(), 0)
	_, _ = store.Dispatch(domain.FieldUpdate{Field: domain.FieldAppID, Value: "a"})

	store.Reset(domain.SessionConfig{AppID: "z"})

	req.Equal("z", store.Current().AppID)
	_, ok := store.Undo()
	req.False(ok)
}
