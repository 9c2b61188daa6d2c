package service

// Event names published to session subscribers.
const (
	EventSessionUpdated    = "session_updated"
	EventPhaseChanged      = "phase_changed"
	EventTimerStarted      = "timer_started"
	EventTimerStopped      = "timer_stopped"
	EventParticipantJoined = "participant_joined"
	EventPostItCreated     = "post_it_created"
	EventPostItUpdated     = "post_it_updated"
	EventPostItDeleted     = "post_it_deleted"
	EventClusterCreated    = "cluster_created"
	EventClusterUpdated    = "cluster_updated"
	EventClusterDeleted    = "cluster_deleted"
	EventRoundCreated      = "round_created"
	EventRoundRevealed     = "round_revealed"
	EventVotesSubmitted    = "votes_submitted"
)

// Broadcaster publishes entity-change events to clients subscribed to a
// session. The ws hub implements it; services treat it as an abstract
// observer so delivery mechanics stay outside the core.
type Broadcaster interface {
	BroadcastToSession(sessionID, event string, payload interface{})
	BroadcastToAdmins(sessionID, event string, payload interface{})
}

func broadcast(b Broadcaster, sessionID, event string, payload interface{}) {
	if b == nil {
		return
	}
	b.BroadcastToSession(sessionID, event, payload)
}
