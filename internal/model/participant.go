package model

import "time"

// Participant is an anonymous contributor identified only by an opaque
// display token. The token is stable per browser and scoped to one session:
// the same token joining two sessions yields two participant records.
type Participant struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	SessionID    string    `json:"sessionId" bson:"sessionId"`
	DisplayToken string    `json:"displayToken" bson:"displayToken"`
	JoinedAt     time.Time `json:"joinedAt" bson:"joinedAt"`
}
