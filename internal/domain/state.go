package domain

// SessionState is the connection/publish state of a session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateJoining
	StateJoined
	StatePublishing
	StatePublished
	StateLeaving
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined_unpublished"
	case StatePublishing:
		return "publishing"
	case StatePublished:
		return "published"
	case StateLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Transient states are only held while an operation is in flight.
func (s SessionState) Transient() bool {
	return s == StateJoining || s == StatePublishing || s == StateLeaving
}

// Trigger names a caller action (or an event that acts like one).
type Trigger string

const (
	TriggerJoin      Trigger = "join"
	TriggerPublish   Trigger = "publish"
	TriggerUnpublish Trigger = "unpublish"
	TriggerLeave     Trigger = "leave"
	// TriggerLost is raised by the connection itself, never by a caller.
	TriggerLost Trigger = "connection_lost"
)
