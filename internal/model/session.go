package model

import "time"

// Phase is the lifecycle phase of a workshop session. Phases advance in the
// fixed order collect -> organize -> vote -> results.
type Phase string

const (
	PhaseCollect  Phase = "collect"
	PhaseOrganize Phase = "organize"
	PhaseVote     Phase = "vote"
	PhaseResults  Phase = "results"
)

// PhaseOrder is the forward order of session phases.
var PhaseOrder = []Phase{PhaseCollect, PhaseOrganize, PhaseVote, PhaseResults}

// Index returns the position of the phase in PhaseOrder, or -1 for an
// unknown phase.
func (p Phase) Index() int {
	for i, phase := range PhaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionArchived  SessionStatus = "archived"
)

// RevealMode controls whether vote results are visible live or only after
// an explicit reveal.
type RevealMode string

const (
	RevealLive     RevealMode = "live"
	RevealOnDemand RevealMode = "reveal"
)

// Session is one facilitated workshop instance with one question.
type Session struct {
	ID                    string        `json:"id" bson:"_id,omitempty"`
	UserID                string        `json:"userId" bson:"userId"`
	FolderID              string        `json:"folderId,omitempty" bson:"folderId,omitempty"`
	Question              string        `json:"question" bson:"question"`
	ShortCode             string        `json:"shortCode" bson:"shortCode"`
	Phase                 Phase         `json:"phase" bson:"phase"`
	Status                SessionStatus `json:"status" bson:"status"`
	ParticipantVisibility bool          `json:"participantVisibility" bson:"participantVisibility"`
	RevealMode            RevealMode    `json:"revealMode" bson:"revealMode"`
	TimerEnabled          bool          `json:"timerEnabled" bson:"timerEnabled"`
	TimerSeconds          int           `json:"timerSeconds,omitempty" bson:"timerSeconds,omitempty"`
	TimerStartedAt        *time.Time    `json:"timerStartedAt,omitempty" bson:"timerStartedAt,omitempty"`
	CreatedAt             time.Time     `json:"createdAt" bson:"createdAt"`
}

// SessionUpdate carries the optional fields of a generic session update.
// Nil fields are left untouched.
type SessionUpdate struct {
	Question              *string        `json:"question,omitempty"`
	ParticipantVisibility *bool          `json:"participantVisibility,omitempty"`
	RevealMode            *RevealMode    `json:"revealMode,omitempty"`
	Status                *SessionStatus `json:"status,omitempty"`
}

// SessionFilter narrows a session list query. Archived sessions are
// excluded unless IncludeArchived is set or Status explicitly asks for them.
type SessionFilter struct {
	FolderID        string
	Status          SessionStatus
	IncludeArchived bool
}
