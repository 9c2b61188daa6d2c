package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// ParticipantService manages anonymous participants joining sessions by
// display token.
type ParticipantService struct {
	participantRepo repository.ParticipantRepo
	sessionRepo     repository.SessionRepo
	broadcaster     Broadcaster
}

// NewParticipantService creates a new participant service.
func NewParticipantService(participantRepo repository.ParticipantRepo, sessionRepo repository.SessionRepo) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		sessionRepo:     sessionRepo,
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *ParticipantService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Join registers a participant in an active session. Idempotent per
// token+session: re-joining with a known token returns the existing record.
// The same token joining a different session creates a distinct record. A
// missing token gets a fresh one minted server-side.
func (s *ParticipantService) Join(ctx context.Context, sessionID, displayToken string) (*model.Participant, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Status != model.SessionActive {
		return nil, ErrSessionNotActive
	}

	if displayToken == "" {
		displayToken = "pt_" + uuid.NewString()
	}

	existing, err := s.participantRepo.GetByToken(ctx, displayToken)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.SessionID == sessionID {
		return existing, nil
	}

	participant := &model.Participant{
		SessionID:    sessionID,
		DisplayToken: displayToken,
		JoinedAt:     time.Now(),
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}
	broadcast(s.broadcaster, sessionID, EventParticipantJoined, map[string]string{"participantId": participant.ID})
	return participant, nil
}

// Reconnect returns the participant for a token within a session, or nil
// when the token is unknown or belongs to another session.
func (s *ParticipantService) Reconnect(ctx context.Context, displayToken, sessionID string) (*model.Participant, error) {
	participant, err := s.participantRepo.GetByToken(ctx, displayToken)
	if err != nil {
		return nil, err
	}
	if participant == nil || participant.SessionID != sessionID {
		return nil, nil
	}
	return participant, nil
}

// BySession returns all participants of a session.
func (s *ParticipantService) BySession(ctx context.Context, sessionID string) ([]*model.Participant, error) {
	return s.participantRepo.ListBySession(ctx, sessionID)
}

// Count returns the number of participants in a session.
func (s *ParticipantService) Count(ctx context.Context, sessionID string) (int, error) {
	return s.participantRepo.CountBySession(ctx, sessionID)
}
