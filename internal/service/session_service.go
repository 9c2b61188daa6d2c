package service

import (
	"context"
	"time"

	"stormboard/internal/cache"
	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// SessionService owns the session lifecycle: creation, the phase state
// machine, duplication, timers and deletion.
type SessionService struct {
	sessionRepo     repository.SessionRepo
	roundRepo       repository.RoundRepo
	voteRepo        repository.VoteRepo
	participantRepo repository.ParticipantRepo
	sessionCache    cache.SessionCache
	resultsCache    cache.ResultsCache
	authSvc         *AuthService
	broadcaster     Broadcaster
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessionRepo repository.SessionRepo,
	roundRepo repository.RoundRepo,
	voteRepo repository.VoteRepo,
	participantRepo repository.ParticipantRepo,
	sessionCache cache.SessionCache,
	resultsCache cache.ResultsCache,
	authSvc *AuthService,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		roundRepo:       roundRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		sessionCache:    sessionCache,
		resultsCache:    resultsCache,
		authSvc:         authSvc,
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create creates a session in the collect phase with a fresh unique short
// code. Visibility defaults to true when nil.
func (s *SessionService) Create(ctx context.Context, cred model.Credential, question string, visibility *bool, folderID string) (*model.Session, error) {
	if cred.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	shortCode, err := uniqueShortCode(ctx, s.sessionRepo)
	if err != nil {
		return nil, err
	}

	participantVisibility := true
	if visibility != nil {
		participantVisibility = *visibility
	}

	session := &model.Session{
		UserID:                cred.UserID,
		FolderID:              folderID,
		Question:              question,
		ShortCode:             shortCode,
		Phase:                 model.PhaseCollect,
		Status:                model.SessionActive,
		ParticipantVisibility: participantVisibility,
		RevealMode:            model.RevealLive,
		CreatedAt:             time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns a session by ID, or nil when absent.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// GetByShortCode returns the session with the given join code, or nil.
// Lookups go through the cache; misses populate it.
func (s *SessionService) GetByShortCode(ctx context.Context, code string) (*model.Session, error) {
	if s.sessionCache != nil {
		if cached, err := s.sessionCache.GetByShortCode(ctx, code); err == nil && cached != nil {
			return cached, nil
		}
	}
	session, err := s.sessionRepo.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if session != nil && s.sessionCache != nil {
		_ = s.sessionCache.Set(ctx, session)
	}
	return session, nil
}

// List returns the caller's sessions, newest first. Anonymous callers get
// an empty list. Archived sessions are excluded unless the filter asks for
// them.
func (s *SessionService) List(ctx context.Context, cred model.Credential, filter model.SessionFilter) ([]*model.Session, error) {
	if cred.UserID == "" {
		return nil, nil
	}

	var sessions []*model.Session
	var err error
	if filter.FolderID != "" {
		sessions, err = s.sessionRepo.ListByFolder(ctx, filter.FolderID)
		if err != nil {
			return nil, err
		}
		filtered := sessions[:0]
		for _, session := range sessions {
			if session.UserID == cred.UserID {
				filtered = append(filtered, session)
			}
		}
		sessions = filtered
	} else {
		sessions, err = s.sessionRepo.ListByUser(ctx, cred.UserID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*model.Session, 0, len(sessions))
	for _, session := range sessions {
		if filter.Status != "" {
			if session.Status == filter.Status {
				out = append(out, session)
			}
			continue
		}
		if !filter.IncludeArchived && session.Status == model.SessionArchived {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

// Update applies a partial update to a session. Owner only.
func (s *SessionService) Update(ctx context.Context, cred model.Credential, sessionID string, update model.SessionUpdate) (*model.Session, error) {
	session, err := s.authSvc.RequireOwner(ctx, cred, sessionID)
	if err != nil {
		return nil, err
	}

	if update.Question != nil {
		session.Question = *update.Question
	}
	if update.ParticipantVisibility != nil {
		session.ParticipantVisibility = *update.ParticipantVisibility
	}
	if update.RevealMode != nil {
		session.RevealMode = *update.RevealMode
	}
	if update.Status != nil {
		session.Status = *update.Status
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventSessionUpdated, session)
	return session, nil
}

// AdvancePhase moves the session to the next phase in the fixed order
// collect -> organize -> vote -> results. Owner or active co-admin.
func (s *SessionService) AdvancePhase(ctx context.Context, cred model.Credential, sessionID string) (model.Phase, error) {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return "", err
	}

	idx := session.Phase.Index()
	if idx < 0 || idx >= len(model.PhaseOrder)-1 {
		return "", ErrAlreadyAtFinalPhase
	}

	session.Phase = model.PhaseOrder[idx+1]
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventPhaseChanged, map[string]model.Phase{"phase": session.Phase})
	return session.Phase, nil
}

// RevertPhase moves the session back to a strictly earlier phase. Leaving
// the vote phase behind (target collect or organize) cascades: every voting
// round of the session and every vote in those rounds is deleted. Post-its
// and clusters are never touched. The cascade deletes votes before their
// round, so re-running it after a crash is safe.
func (s *SessionService) RevertPhase(ctx context.Context, cred model.Credential, sessionID string, target model.Phase) (model.Phase, error) {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return "", err
	}

	targetIdx := target.Index()
	if targetIdx < 0 || targetIdx >= session.Phase.Index() {
		return "", ErrInvalidRevert
	}

	if target == model.PhaseCollect || target == model.PhaseOrganize {
		rounds, err := s.roundRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return "", err
		}
		for _, round := range rounds {
			if err := s.voteRepo.DeleteByRound(ctx, round.ID); err != nil {
				return "", err
			}
			if err := s.roundRepo.Delete(ctx, round.ID); err != nil {
				return "", err
			}
			if s.resultsCache != nil {
				_ = s.resultsCache.Invalidate(ctx, round.ID)
			}
		}
	}

	session.Phase = target
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventPhaseChanged, map[string]model.Phase{"phase": session.Phase})
	return target, nil
}

// Remove deletes a session. Owner only.
func (s *SessionService) Remove(ctx context.Context, cred model.Credential, sessionID string) error {
	session, err := s.authSvc.RequireOwner(ctx, cred, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.invalidate(ctx, session)
	return nil
}

// Duplicate creates a fresh session copying question, visibility, reveal
// mode and folder. The copy gets a new short code, starts at collect with
// active status, and carries no post-its, clusters or rounds.
func (s *SessionService) Duplicate(ctx context.Context, cred model.Credential, sessionID string) (*model.Session, error) {
	session, err := s.authSvc.RequireOwner(ctx, cred, sessionID)
	if err != nil {
		return nil, err
	}

	shortCode, err := uniqueShortCode(ctx, s.sessionRepo)
	if err != nil {
		return nil, err
	}

	copy := &model.Session{
		UserID:                session.UserID,
		FolderID:              session.FolderID,
		Question:              session.Question,
		ShortCode:             shortCode,
		Phase:                 model.PhaseCollect,
		Status:                model.SessionActive,
		ParticipantVisibility: session.ParticipantVisibility,
		RevealMode:            session.RevealMode,
		CreatedAt:             time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, copy); err != nil {
		return nil, err
	}
	return copy, nil
}

// MoveToFolder assigns the session to a folder, or clears the assignment
// when folderID is empty. Owner only.
func (s *SessionService) MoveToFolder(ctx context.Context, cred model.Credential, sessionID, folderID string) error {
	session, err := s.authSvc.RequireOwner(ctx, cred, sessionID)
	if err != nil {
		return err
	}
	session.FolderID = folderID
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	s.invalidate(ctx, session)
	return nil
}

// StartTimer starts the session countdown. Owner or co-admin.
func (s *SessionService) StartTimer(ctx context.Context, cred model.Credential, sessionID string, seconds int) error {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return err
	}
	now := time.Now()
	session.TimerEnabled = true
	session.TimerSeconds = seconds
	session.TimerStartedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventTimerStarted, map[string]int{"seconds": seconds})
	return nil
}

// StopTimer stops the countdown but keeps the configured duration.
func (s *SessionService) StopTimer(ctx context.Context, cred model.Credential, sessionID string) error {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return err
	}
	session.TimerEnabled = false
	session.TimerStartedAt = nil
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventTimerStopped, nil)
	return nil
}

// ResetTimer clears the timer entirely.
func (s *SessionService) ResetTimer(ctx context.Context, cred model.Credential, sessionID string) error {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return err
	}
	session.TimerEnabled = false
	session.TimerSeconds = 0
	session.TimerStartedAt = nil
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	s.invalidate(ctx, session)
	broadcast(s.broadcaster, session.ID, EventTimerStopped, nil)
	return nil
}

func (s *SessionService) invalidate(ctx context.Context, session *model.Session) {
	if s.sessionCache != nil {
		_ = s.sessionCache.Invalidate(ctx, session.ShortCode)
	}
}
