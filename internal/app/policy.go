package app

import "github.com/dkeye/VoiceClient/internal/domain"

// transitions lists every legal caller trigger per state and the state entered
// when the trigger is accepted. Pairs not listed are invalid transitions.
var transitions = map[domain.SessionState]map[domain.Trigger]domain.SessionState{
	domain.StateIdle: {
		domain.TriggerJoin: domain.StateJoining,
	},
	domain.StateJoined: {
		domain.TriggerPublish: domain.StatePublishing,
		domain.TriggerLeave:   domain.StateLeaving,
	},
	domain.StatePublished: {
		domain.TriggerUnpublish: domain.StateJoined,
		domain.TriggerLeave:     domain.StateLeaving,
	},
}

// Next reports the state entered when trig is accepted in from.
func Next(from domain.SessionState, trig domain.Trigger) (domain.SessionState, bool) {
	to, ok := transitions[from][trig]
	return to, ok
}
