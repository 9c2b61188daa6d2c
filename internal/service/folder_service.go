package service

import (
	"context"
	"time"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// FolderService manages a facilitator's session folders.
type FolderService struct {
	folderRepo  repository.FolderRepo
	sessionRepo repository.SessionRepo
}

// NewFolderService creates a new folder service.
func NewFolderService(folderRepo repository.FolderRepo, sessionRepo repository.SessionRepo) *FolderService {
	return &FolderService{
		folderRepo:  folderRepo,
		sessionRepo: sessionRepo,
	}
}

// List returns the caller's folders. Anonymous callers get an empty list.
func (s *FolderService) List(ctx context.Context, cred model.Credential) ([]*model.Folder, error) {
	if cred.UserID == "" {
		return nil, nil
	}
	return s.folderRepo.ListByUser(ctx, cred.UserID)
}

// Create creates a folder owned by the caller.
func (s *FolderService) Create(ctx context.Context, cred model.Credential, name string) (*model.Folder, error) {
	if cred.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	folder := &model.Folder{
		UserID:    cred.UserID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Rename renames a folder. Owner only; other callers see not-found.
func (s *FolderService) Rename(ctx context.Context, cred model.Credential, folderID, name string) error {
	folder, err := s.requireOwned(ctx, cred, folderID)
	if err != nil {
		return err
	}
	folder.Name = name
	return s.folderRepo.Update(ctx, folder)
}

// Remove deletes a folder after unassigning every session that referenced
// it. Sessions themselves are never deleted.
func (s *FolderService) Remove(ctx context.Context, cred model.Credential, folderID string) error {
	if _, err := s.requireOwned(ctx, cred, folderID); err != nil {
		return err
	}
	if err := s.sessionRepo.ClearFolder(ctx, folderID); err != nil {
		return err
	}
	return s.folderRepo.Delete(ctx, folderID)
}

func (s *FolderService) requireOwned(ctx context.Context, cred model.Credential, folderID string) (*model.Folder, error) {
	if cred.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.UserID != cred.UserID {
		return nil, ErrFolderNotFound
	}
	return folder, nil
}
