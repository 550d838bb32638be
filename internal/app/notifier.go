package app

import (
	"maps"
	"sync"
	"time"

	"github.com/dkeye/VoiceClient/internal/domain"
)

type NotificationKind string

const (
	NotifyState   NotificationKind = "state"
	NotifyRemotes NotificationKind = "remotes"
)

// Notification tells observers that something render-relevant changed.
type Notification struct {
	Kind    NotificationKind    `json:"kind"`
	Op      domain.Trigger      `json:"op,omitempty"`
	From    domain.SessionState `json:"from"`
	To      domain.SessionState `json:"to"`
	Remotes int                 `json:"remotes"`
	At      time.Time           `json:"at"`
}

type Listener func(Notification)

// Notifier fans notifications out to subscribed listeners.
// Listeners are called synchronously, in subscription-independent order, without locks held.
type Notifier struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

func (n *Notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.listeners[id] = l
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) Publish(ev Notification) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	n.mu.RLock()
	snapshot := make(map[int]Listener, len(n.listeners))
	maps.Copy(snapshot, n.listeners)
	n.mu.RUnlock()

	for _, l := range snapshot {
		l(ev)
	}
}
