package service

import (
	"context"
	"testing"

	"stormboard/internal/model"
	"stormboard/internal/repository/memory"
)

const (
	testUser     = "facilitator"
	testPassword = "hunter2"
)

// testEnv wires every service against a shared in-memory store with caches
// disabled.
type testEnv struct {
	store        *memory.Store
	auth         *AuthService
	sessions     *SessionService
	folders      *FolderService
	participants *ParticipantService
	coAdmins     *CoAdminService
	postIts      *PostItService
	clusters     *ClusterService
	voting       *VotingService
}

func newTestEnv() *testEnv {
	store := memory.New()
	auth := NewAuthService(testUser, testPassword, "test-secret", store.Sessions(), store.CoAdmins(), store.Participants())
	return &testEnv{
		store:        store,
		auth:         auth,
		sessions:     NewSessionService(store.Sessions(), store.Rounds(), store.Votes(), store.Participants(), nil, nil, auth),
		folders:      NewFolderService(store.Folders(), store.Sessions()),
		participants: NewParticipantService(store.Participants(), store.Sessions()),
		coAdmins:     NewCoAdminService(store.CoAdmins(), auth),
		postIts:      NewPostItService(store.PostIts(), store.Clusters(), auth),
		clusters:     NewClusterService(store.Clusters(), store.PostIts(), auth),
		voting:       NewVotingService(store.Rounds(), store.Votes(), store.Participants(), nil, auth),
	}
}

func ownerCred() model.Credential {
	return model.OwnerCredential(testUser)
}

func (e *testEnv) mustCreateSession(t *testing.T) *model.Session {
	t.Helper()
	session, err := e.sessions.Create(context.Background(), ownerCred(), "How might we improve onboarding?", nil, "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func (e *testEnv) mustJoin(t *testing.T, sessionID, token string) *model.Participant {
	t.Helper()
	participant, err := e.participants.Join(context.Background(), sessionID, token)
	if err != nil {
		t.Fatalf("join session: %v", err)
	}
	return participant
}

func (e *testEnv) mustAdvanceTo(t *testing.T, sessionID string, target model.Phase) {
	t.Helper()
	for {
		session, err := e.sessions.Get(context.Background(), sessionID)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if session.Phase == target {
			return
		}
		if _, err := e.sessions.AdvancePhase(context.Background(), ownerCred(), sessionID); err != nil {
			t.Fatalf("advance phase: %v", err)
		}
	}
}

func (e *testEnv) mustCreatePostIt(t *testing.T, sessionID, text string) *model.PostIt {
	t.Helper()
	postIt, err := e.postIts.Create(context.Background(), ownerCred(), sessionID, text)
	if err != nil {
		t.Fatalf("create post-it: %v", err)
	}
	return postIt
}
