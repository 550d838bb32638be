package app

import (
	"testing"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Publish_Reaches_All_Listeners(t *testing.T) {
	req := require.New(t)
	n := NewNotifier()
	var a, b []Notification
	n.Subscribe(func(ev Notification) { a = append(a, ev) })
	n.Subscribe(func(ev Notification) { b = append(b, ev) })

	n.Publish(Notification{Kind: NotifyState, Op: domain.TriggerJoin, From: domain.StateIdle, To: domain.StateJoining})

	req.Len(a, 1)
	req.Len(b, 1)
	req.Equal(domain.StateJoining, a[0].To)
	req.False(a[0].At.IsZero())
}

func TestNotifier_Unsubscribe(t *testing.T) {
	req := require.New(t)
	n := NewNotifier()
	calls := 0
	unsubscribe := n.Subscribe(func(Notification) { calls++ })

	n.Publish(Notification{Kind: NotifyRemotes})
	unsubscribe()
	unsubscribe()
	n.Publish(Notification{Kind: NotifyRemotes})

	req.Equal(1, calls)
}

func TestNotifier_Listener_May_Unsubscribe_Itself(t *testing.T) {
	req := require.New(t)
	n := NewNotifier()
	calls := 0
	var unsubscribe func()
	unsubscribe = n.Subscribe(func(Notification) {
		calls++
		unsubscribe()
	})

	n.Publish(Notification{Kind: NotifyState})
	n.Publish(Notification{Kind: NotifyState})

	req.Equal(1, calls)
}
