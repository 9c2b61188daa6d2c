package service

import (
	"context"
	"math/rand"
	"time"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// Auto-layout grid for new post-its.
const (
	layoutCols    = 5
	layoutCardW   = 180
	layoutCardH   = 140
	layoutGap     = 20
	layoutOriginX = 40
	layoutOriginY = 40
)

var postItColors = []string{
	"#fef9c3", // yellow
	"#ffe0de", // coral
	"#d2f7ea", // teal
	"#ede5ff", // purple
	"#dbeafe", // blue
	"#fce7f3", // pink
}

// PostItService manages post-its: participant submissions during collect
// and admin edits in any phase.
type PostItService struct {
	postItRepo  repository.PostItRepo
	clusterRepo repository.ClusterRepo
	authSvc     *AuthService
	broadcaster Broadcaster
}

// NewPostItService creates a new post-it service.
func NewPostItService(postItRepo repository.PostItRepo, clusterRepo repository.ClusterRepo, authSvc *AuthService) *PostItService {
	return &PostItService{
		postItRepo:  postItRepo,
		clusterRepo: clusterRepo,
		authSvc:     authSvc,
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *PostItService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create adds a post-it to a session. Participants (display token) may only
// contribute during the collect phase; the owner or a co-admin may add in
// any phase. Position comes from the grid layout over the current count;
// the read-then-place is best-effort, concurrent creates may overlap.
func (s *PostItService) Create(ctx context.Context, cred model.Credential, sessionID, text string) (*model.PostIt, error) {
	var participantID string
	if cred.Kind == model.CredentialParticipant {
		participant, err := s.authSvc.ResolveParticipant(ctx, cred.ParticipantToken, sessionID)
		if err != nil {
			return nil, err
		}
		session, err := s.authSvc.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}
		if session.Phase != model.PhaseCollect {
			return nil, ErrPhaseNotCollect
		}
		participantID = participant.ID
	} else {
		if _, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID); err != nil {
			return nil, err
		}
	}

	count, err := s.postItRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	col := count % layoutCols
	row := count / layoutCols

	postIt := &model.PostIt{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Text:          text,
		PositionX:     float64(layoutOriginX + col*(layoutCardW+layoutGap)),
		PositionY:     float64(layoutOriginY + row*(layoutCardH+layoutGap)),
		Color:         postItColors[rand.Intn(len(postItColors))],
		CreatedAt:     time.Now(),
	}
	if err := s.postItRepo.Create(ctx, postIt); err != nil {
		return nil, err
	}
	broadcast(s.broadcaster, sessionID, EventPostItCreated, postIt)
	return postIt, nil
}

// UpdateText replaces a post-it's text. Owner or co-admin.
func (s *PostItService) UpdateText(ctx context.Context, cred model.Credential, postItID, text string) error {
	postIt, err := s.requireAdmin(ctx, cred, postItID)
	if err != nil {
		return err
	}
	postIt.Text = text
	if err := s.postItRepo.Update(ctx, postIt); err != nil {
		return err
	}
	broadcast(s.broadcaster, postIt.SessionID, EventPostItUpdated, postIt)
	return nil
}

// Move repositions a post-it on the canvas. Owner or co-admin.
func (s *PostItService) Move(ctx context.Context, cred model.Credential, postItID string, x, y float64) error {
	postIt, err := s.requireAdmin(ctx, cred, postItID)
	if err != nil {
		return err
	}
	postIt.PositionX = x
	postIt.PositionY = y
	if err := s.postItRepo.Update(ctx, postIt); err != nil {
		return err
	}
	broadcast(s.broadcaster, postIt.SessionID, EventPostItUpdated, postIt)
	return nil
}

// SetCluster assigns the post-it to a cluster, or unassigns it when
// clusterID is empty. The target cluster must exist and belong to the same
// session. Owner or co-admin.
func (s *PostItService) SetCluster(ctx context.Context, cred model.Credential, postItID, clusterID string) error {
	postIt, err := s.requireAdmin(ctx, cred, postItID)
	if err != nil {
		return err
	}
	if clusterID != "" {
		cluster, err := s.clusterRepo.GetByID(ctx, clusterID)
		if err != nil {
			return err
		}
		if cluster == nil || cluster.SessionID != postIt.SessionID {
			return ErrClusterNotFound
		}
	}
	postIt.ClusterID = clusterID
	if err := s.postItRepo.Update(ctx, postIt); err != nil {
		return err
	}
	broadcast(s.broadcaster, postIt.SessionID, EventPostItUpdated, postIt)
	return nil
}

// Remove deletes a post-it. Removing one that is already gone is a no-op
// success. Owner or co-admin.
func (s *PostItService) Remove(ctx context.Context, cred model.Credential, postItID string) error {
	postIt, err := s.postItRepo.GetByID(ctx, postItID)
	if err != nil {
		return err
	}
	if postIt == nil {
		return nil
	}
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, postIt.SessionID); err != nil {
		return err
	}
	if err := s.postItRepo.Delete(ctx, postItID); err != nil {
		return err
	}
	broadcast(s.broadcaster, postIt.SessionID, EventPostItDeleted, map[string]string{"postItId": postItID})
	return nil
}

// BySession returns all post-its of a session in creation order.
func (s *PostItService) BySession(ctx context.Context, sessionID string) ([]*model.PostIt, error) {
	return s.postItRepo.ListBySession(ctx, sessionID)
}

func (s *PostItService) requireAdmin(ctx context.Context, cred model.Credential, postItID string) (*model.PostIt, error) {
	postIt, err := s.postItRepo.GetByID(ctx, postItID)
	if err != nil {
		return nil, err
	}
	if postIt == nil {
		return nil, ErrPostItNotFound
	}
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, postIt.SessionID); err != nil {
		return nil, err
	}
	return postIt, nil
}
