package model

import "time"

// PostIt is a single textual contribution positioned on the session canvas.
// ParticipantID is empty when the post-it was created by the owner or a
// co-admin.
type PostIt struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	SessionID     string    `json:"sessionId" bson:"sessionId"`
	ParticipantID string    `json:"participantId,omitempty" bson:"participantId,omitempty"`
	Text          string    `json:"text" bson:"text"`
	ClusterID     string    `json:"clusterId,omitempty" bson:"clusterId,omitempty"`
	PositionX     float64   `json:"positionX" bson:"positionX"`
	PositionY     float64   `json:"positionY" bson:"positionY"`
	Color         string    `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
