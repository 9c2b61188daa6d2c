package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// CoAdminService manages the single co-admin slot of a session: the owner
// issues an invite, the invitee joins by token, the owner can revoke.
type CoAdminService struct {
	coAdminRepo repository.CoAdminRepo
	authSvc     *AuthService
	broadcaster Broadcaster
}

// NewCoAdminService creates a new co-admin service.
func NewCoAdminService(coAdminRepo repository.CoAdminRepo, authSvc *AuthService) *CoAdminService {
	return &CoAdminService{
		coAdminRepo: coAdminRepo,
		authSvc:     authSvc,
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *CoAdminService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateInvite mints an invite for the session's co-admin slot. Idempotent:
// while an invite exists for the session the same token is returned, joined
// or not. Owner only.
func (s *CoAdminService) CreateInvite(ctx context.Context, cred model.Credential, sessionID string) (*model.CoAdmin, error) {
	if _, err := s.authSvc.RequireOwner(ctx, cred, sessionID); err != nil {
		return nil, err
	}

	existing, err := s.coAdminRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	coAdmin := &model.CoAdmin{
		SessionID:   sessionID,
		InviteToken: "ca_" + uuid.NewString(),
		IsActive:    false,
	}
	if err := s.coAdminRepo.Create(ctx, coAdmin); err != nil {
		return nil, err
	}
	return coAdmin, nil
}

// Join activates a co-admin invite. An unknown token fails ErrInvalidInvite;
// joining an already-active invite again just updates the display name.
// Returns the record so callers learn which session the token opens.
func (s *CoAdminService) Join(ctx context.Context, inviteToken, displayName string) (*model.CoAdmin, error) {
	coAdmin, err := s.coAdminRepo.GetByToken(ctx, inviteToken)
	if err != nil {
		return nil, err
	}
	if coAdmin == nil {
		return nil, ErrInvalidInvite
	}

	coAdmin.DisplayName = displayName
	if !coAdmin.IsActive {
		coAdmin.IsActive = true
		coAdmin.JoinedAt = time.Now()
	}
	if err := s.coAdminRepo.Update(ctx, coAdmin); err != nil {
		return nil, err
	}
	return coAdmin, nil
}

// Revoke deletes the session's co-admin record, invalidating its token
// immediately. A later invite mints a fresh token. Revoking when no record
// exists is a no-op success. Owner only.
func (s *CoAdminService) Revoke(ctx context.Context, cred model.Credential, sessionID string) error {
	if _, err := s.authSvc.RequireOwner(ctx, cred, sessionID); err != nil {
		return err
	}
	return s.coAdminRepo.DeleteBySession(ctx, sessionID)
}

// GetBySession returns the session's co-admin record, or nil. Owner only.
func (s *CoAdminService) GetBySession(ctx context.Context, cred model.Credential, sessionID string) (*model.CoAdmin, error) {
	if _, err := s.authSvc.RequireOwner(ctx, cred, sessionID); err != nil {
		return nil, err
	}
	return s.coAdminRepo.GetBySession(ctx, sessionID)
}

// GetByToken returns the co-admin record for a token, or nil when unknown.
func (s *CoAdminService) GetByToken(ctx context.Context, inviteToken string) (*model.CoAdmin, error) {
	return s.coAdminRepo.GetByToken(ctx, inviteToken)
}
