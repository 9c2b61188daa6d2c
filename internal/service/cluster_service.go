package service

import (
	"context"
	"time"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

const defaultClusterColor = "#f5f5f4"

// ClusterService manages labeled groupings on the canvas.
type ClusterService struct {
	clusterRepo repository.ClusterRepo
	postItRepo  repository.PostItRepo
	authSvc     *AuthService
	broadcaster Broadcaster
}

// NewClusterService creates a new cluster service.
func NewClusterService(clusterRepo repository.ClusterRepo, postItRepo repository.PostItRepo, authSvc *AuthService) *ClusterService {
	return &ClusterService{
		clusterRepo: clusterRepo,
		postItRepo:  postItRepo,
		authSvc:     authSvc,
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *ClusterService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create adds a cluster to the session canvas. Owner or co-admin.
func (s *ClusterService) Create(ctx context.Context, cred model.Credential, sessionID, label string, x, y float64, color string) (*model.Cluster, error) {
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID); err != nil {
		return nil, err
	}
	if color == "" {
		color = defaultClusterColor
	}
	cluster := &model.Cluster{
		SessionID: sessionID,
		Label:     label,
		PositionX: x,
		PositionY: y,
		Color:     color,
		CreatedAt: time.Now(),
	}
	if err := s.clusterRepo.Create(ctx, cluster); err != nil {
		return nil, err
	}
	broadcast(s.broadcaster, sessionID, EventClusterCreated, cluster)
	return cluster, nil
}

// Update applies a partial update to a cluster. Owner or co-admin.
func (s *ClusterService) Update(ctx context.Context, cred model.Credential, clusterID string, update model.ClusterUpdate) error {
	cluster, err := s.clusterRepo.GetByID(ctx, clusterID)
	if err != nil {
		return err
	}
	if cluster == nil {
		return ErrClusterNotFound
	}
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, cluster.SessionID); err != nil {
		return err
	}

	if update.Label != nil {
		cluster.Label = *update.Label
	}
	if update.PositionX != nil {
		cluster.PositionX = *update.PositionX
	}
	if update.PositionY != nil {
		cluster.PositionY = *update.PositionY
	}
	if update.Width != nil {
		cluster.Width = *update.Width
	}
	if update.Height != nil {
		cluster.Height = *update.Height
	}
	if update.Color != nil {
		cluster.Color = *update.Color
	}

	if err := s.clusterRepo.Update(ctx, cluster); err != nil {
		return err
	}
	broadcast(s.broadcaster, cluster.SessionID, EventClusterUpdated, cluster)
	return nil
}

// Remove unassigns every post-it referencing the cluster, then deletes it.
// Post-its in other clusters or without a cluster are untouched. Removing
// an absent cluster is a no-op success. Owner or co-admin.
func (s *ClusterService) Remove(ctx context.Context, cred model.Credential, clusterID string) error {
	cluster, err := s.clusterRepo.GetByID(ctx, clusterID)
	if err != nil {
		return err
	}
	if cluster == nil {
		return nil
	}
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, cluster.SessionID); err != nil {
		return err
	}

	if err := s.postItRepo.ClearCluster(ctx, clusterID); err != nil {
		return err
	}
	if err := s.clusterRepo.Delete(ctx, clusterID); err != nil {
		return err
	}
	broadcast(s.broadcaster, cluster.SessionID, EventClusterDeleted, map[string]string{"clusterId": clusterID})
	return nil
}

// BySession returns all clusters of a session.
func (s *ClusterService) BySession(ctx context.Context, sessionID string) ([]*model.Cluster, error) {
	return s.clusterRepo.ListBySession(ctx, sessionID)
}
