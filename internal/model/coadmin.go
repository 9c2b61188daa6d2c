package model

import "time"

// CoAdmin is the secondary facilitator of a session, at most one per
// session. Created inactive by an invite; activated when the invitee joins.
type CoAdmin struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SessionID   string    `json:"sessionId" bson:"sessionId"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	InviteToken string    `json:"inviteToken" bson:"inviteToken"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	JoinedAt    time.Time `json:"joinedAt" bson:"joinedAt"`
}
