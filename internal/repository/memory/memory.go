// Package memory provides in-memory implementations of the repository
// interfaces. They back unit tests and local development without a MongoDB
// instance, preserving insertion order so layout and aggregation behave the
// same as the indexed store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// Store holds every entity slice behind one lock.
type Store struct {
	mu           sync.RWMutex
	sessions     []*model.Session
	folders      []*model.Folder
	participants []*model.Participant
	coAdmins     []*model.CoAdmin
	postIts      []*model.PostIt
	clusters     []*model.Cluster
	rounds       []*model.VotingRound
	votes        []*model.Vote
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) Sessions() repository.SessionRepo         { return &sessionRepo{s} }
func (s *Store) Folders() repository.FolderRepo           { return &folderRepo{s} }
func (s *Store) Participants() repository.ParticipantRepo { return &participantRepo{s} }
func (s *Store) CoAdmins() repository.CoAdminRepo         { return &coAdminRepo{s} }
func (s *Store) PostIts() repository.PostItRepo           { return &postItRepo{s} }
func (s *Store) Clusters() repository.ClusterRepo         { return &clusterRepo{s} }
func (s *Store) Rounds() repository.RoundRepo             { return &roundRepo{s} }
func (s *Store) Votes() repository.VoteRepo               { return &voteRepo{s} }

func newID() string {
	return uuid.NewString()
}

// sessions

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *model.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.ID == "" {
		session.ID = newID()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	copied := *session
	r.s.sessions = append(r.s.sessions, &copied)
	return nil
}

func (r *sessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, session := range r.s.sessions {
		if session.ID == id {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *sessionRepo) GetByShortCode(_ context.Context, code string) (*model.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, session := range r.s.sessions {
		if session.ShortCode == code {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *sessionRepo) ListByUser(_ context.Context, userID string) ([]*model.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Session
	for _, session := range r.s.sessions {
		if session.UserID == userID {
			copied := *session
			out = append(out, &copied)
		}
	}
	sortSessionsDesc(out)
	return out, nil
}

func (r *sessionRepo) ListByFolder(_ context.Context, folderID string) ([]*model.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Session
	for _, session := range r.s.sessions {
		if session.FolderID == folderID {
			copied := *session
			out = append(out, &copied)
		}
	}
	sortSessionsDesc(out)
	return out, nil
}

func sortSessionsDesc(sessions []*model.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}

func (r *sessionRepo) Update(_ context.Context, session *model.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.sessions {
		if existing.ID == session.ID {
			copied := *session
			r.s.sessions[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *sessionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, session := range r.s.sessions {
		if session.ID == id {
			r.s.sessions = append(r.s.sessions[:i], r.s.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *sessionRepo) ClearFolder(_ context.Context, folderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, session := range r.s.sessions {
		if session.FolderID == folderID {
			session.FolderID = ""
		}
	}
	return nil
}

// folders

type folderRepo struct{ s *Store }

func (r *folderRepo) Create(_ context.Context, folder *model.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if folder.ID == "" {
		folder.ID = newID()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	copied := *folder
	r.s.folders = append(r.s.folders, &copied)
	return nil
}

func (r *folderRepo) GetByID(_ context.Context, id string) (*model.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, folder := range r.s.folders {
		if folder.ID == id {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *folderRepo) ListByUser(_ context.Context, userID string) ([]*model.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Folder
	for _, folder := range r.s.folders {
		if folder.UserID == userID {
			copied := *folder
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *folderRepo) Update(_ context.Context, folder *model.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.folders {
		if existing.ID == folder.ID {
			copied := *folder
			r.s.folders[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *folderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, folder := range r.s.folders {
		if folder.ID == id {
			r.s.folders = append(r.s.folders[:i], r.s.folders[i+1:]...)
			return nil
		}
	}
	return nil
}

// participants

type participantRepo struct{ s *Store }

func (r *participantRepo) Create(_ context.Context, participant *model.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if participant.ID == "" {
		participant.ID = newID()
	}
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}
	copied := *participant
	r.s.participants = append(r.s.participants, &copied)
	return nil
}

func (r *participantRepo) GetByToken(_ context.Context, displayToken string) (*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, participant := range r.s.participants {
		if participant.DisplayToken == displayToken {
			copied := *participant
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *participantRepo) ListBySession(_ context.Context, sessionID string) ([]*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Participant
	for _, participant := range r.s.participants {
		if participant.SessionID == sessionID {
			copied := *participant
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *participantRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	participants, err := r.ListBySession(ctx, sessionID)
	return len(participants), err
}

// coAdmins

type coAdminRepo struct{ s *Store }

func (r *coAdminRepo) Create(_ context.Context, coAdmin *model.CoAdmin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if coAdmin.ID == "" {
		coAdmin.ID = newID()
	}
	copied := *coAdmin
	r.s.coAdmins = append(r.s.coAdmins, &copied)
	return nil
}

func (r *coAdminRepo) GetBySession(_ context.Context, sessionID string) (*model.CoAdmin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, coAdmin := range r.s.coAdmins {
		if coAdmin.SessionID == sessionID {
			copied := *coAdmin
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *coAdminRepo) GetByToken(_ context.Context, inviteToken string) (*model.CoAdmin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, coAdmin := range r.s.coAdmins {
		if coAdmin.InviteToken == inviteToken {
			copied := *coAdmin
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *coAdminRepo) Update(_ context.Context, coAdmin *model.CoAdmin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.coAdmins {
		if existing.ID == coAdmin.ID {
			copied := *coAdmin
			r.s.coAdmins[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *coAdminRepo) DeleteBySession(_ context.Context, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.coAdmins[:0]
	for _, coAdmin := range r.s.coAdmins {
		if coAdmin.SessionID != sessionID {
			kept = append(kept, coAdmin)
		}
	}
	r.s.coAdmins = kept
	return nil
}

// postIts

type postItRepo struct{ s *Store }

func (r *postItRepo) Create(_ context.Context, postIt *model.PostIt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if postIt.ID == "" {
		postIt.ID = newID()
	}
	if postIt.CreatedAt.IsZero() {
		postIt.CreatedAt = time.Now()
	}
	copied := *postIt
	r.s.postIts = append(r.s.postIts, &copied)
	return nil
}

func (r *postItRepo) GetByID(_ context.Context, id string) (*model.PostIt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, postIt := range r.s.postIts {
		if postIt.ID == id {
			copied := *postIt
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *postItRepo) ListBySession(_ context.Context, sessionID string) ([]*model.PostIt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.PostIt
	for _, postIt := range r.s.postIts {
		if postIt.SessionID == sessionID {
			copied := *postIt
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *postItRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	postIts, err := r.ListBySession(ctx, sessionID)
	return len(postIts), err
}

func (r *postItRepo) Update(_ context.Context, postIt *model.PostIt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.postIts {
		if existing.ID == postIt.ID {
			copied := *postIt
			r.s.postIts[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *postItRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, postIt := range r.s.postIts {
		if postIt.ID == id {
			r.s.postIts = append(r.s.postIts[:i], r.s.postIts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *postItRepo) ClearCluster(_ context.Context, clusterID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, postIt := range r.s.postIts {
		if postIt.ClusterID == clusterID {
			postIt.ClusterID = ""
		}
	}
	return nil
}

// clusters

type clusterRepo struct{ s *Store }

func (r *clusterRepo) Create(_ context.Context, cluster *model.Cluster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cluster.ID == "" {
		cluster.ID = newID()
	}
	if cluster.CreatedAt.IsZero() {
		cluster.CreatedAt = time.Now()
	}
	copied := *cluster
	r.s.clusters = append(r.s.clusters, &copied)
	return nil
}

func (r *clusterRepo) GetByID(_ context.Context, id string) (*model.Cluster, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cluster := range r.s.clusters {
		if cluster.ID == id {
			copied := *cluster
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *clusterRepo) ListBySession(_ context.Context, sessionID string) ([]*model.Cluster, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Cluster
	for _, cluster := range r.s.clusters {
		if cluster.SessionID == sessionID {
			copied := *cluster
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *clusterRepo) Update(_ context.Context, cluster *model.Cluster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.clusters {
		if existing.ID == cluster.ID {
			copied := *cluster
			r.s.clusters[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *clusterRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cluster := range r.s.clusters {
		if cluster.ID == id {
			r.s.clusters = append(r.s.clusters[:i], r.s.clusters[i+1:]...)
			return nil
		}
	}
	return nil
}

// rounds

type roundRepo struct{ s *Store }

func (r *roundRepo) Create(_ context.Context, round *model.VotingRound) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if round.ID == "" {
		round.ID = newID()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	copied := *round
	r.s.rounds = append(r.s.rounds, &copied)
	return nil
}

func (r *roundRepo) GetByID(_ context.Context, id string) (*model.VotingRound, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, round := range r.s.rounds {
		if round.ID == id {
			copied := *round
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *roundRepo) ListBySession(_ context.Context, sessionID string) ([]*model.VotingRound, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.VotingRound
	for _, round := range r.s.rounds {
		if round.SessionID == sessionID {
			copied := *round
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RoundNumber < out[j].RoundNumber
	})
	return out, nil
}

func (r *roundRepo) GetLatest(ctx context.Context, sessionID string) (*model.VotingRound, error) {
	rounds, err := r.ListBySession(ctx, sessionID)
	if err != nil || len(rounds) == 0 {
		return nil, err
	}
	return rounds[len(rounds)-1], nil
}

func (r *roundRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	rounds, err := r.ListBySession(ctx, sessionID)
	return len(rounds), err
}

func (r *roundRepo) Update(_ context.Context, round *model.VotingRound) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.rounds {
		if existing.ID == round.ID {
			copied := *round
			r.s.rounds[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *roundRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, round := range r.s.rounds {
		if round.ID == id {
			r.s.rounds = append(r.s.rounds[:i], r.s.rounds[i+1:]...)
			return nil
		}
	}
	return nil
}

// votes

type voteRepo struct{ s *Store }

func (r *voteRepo) Create(_ context.Context, vote *model.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if vote.ID == "" {
		vote.ID = newID()
	}
	copied := *vote
	r.s.votes = append(r.s.votes, &copied)
	return nil
}

func (r *voteRepo) ListByRound(_ context.Context, roundID string) ([]*model.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Vote
	for _, vote := range r.s.votes {
		if vote.RoundID == roundID {
			copied := *vote
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *voteRepo) ListByParticipantRound(_ context.Context, participantID, roundID string) ([]*model.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Vote
	for _, vote := range r.s.votes {
		if vote.ParticipantID == participantID && vote.RoundID == roundID {
			copied := *vote
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *voteRepo) DeleteByParticipantRound(_ context.Context, participantID, roundID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.votes[:0]
	for _, vote := range r.s.votes {
		if vote.ParticipantID != participantID || vote.RoundID != roundID {
			kept = append(kept, vote)
		}
	}
	r.s.votes = kept
	return nil
}

func (r *voteRepo) DeleteByRound(_ context.Context, roundID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.votes[:0]
	for _, vote := range r.s.votes {
		if vote.RoundID != roundID {
			kept = append(kept, vote)
		}
	}
	r.s.votes = kept
	return nil
}
