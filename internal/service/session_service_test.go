package service

import (
	"context"
	"errors"
	"testing"

	"stormboard/internal/model"
)

func TestCreateSessionDefaults(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)

	if session.Phase != model.PhaseCollect {
		t.Errorf("phase = %q, want collect", session.Phase)
	}
	if session.Status != model.SessionActive {
		t.Errorf("status = %q, want active", session.Status)
	}
	if !session.ParticipantVisibility {
		t.Error("participant visibility should default to true")
	}
	if session.RevealMode != model.RevealLive {
		t.Errorf("reveal mode = %q, want live", session.RevealMode)
	}
	if len(session.ShortCode) != shortCodeLength {
		t.Errorf("short code %q has wrong length", session.ShortCode)
	}
}

func TestCreateSessionRequiresAuth(t *testing.T) {
	env := newTestEnv()
	_, err := env.sessions.Create(context.Background(), model.Credential{Kind: model.CredentialAnonymous}, "q", nil, "")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestAdvancePhaseWalksFullOrder(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	want := []model.Phase{model.PhaseOrganize, model.PhaseVote, model.PhaseResults}
	for _, expected := range want {
		phase, err := env.sessions.AdvancePhase(ctx, ownerCred(), session.ID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if phase != expected {
			t.Fatalf("phase = %q, want %q", phase, expected)
		}
	}

	if _, err := env.sessions.AdvancePhase(ctx, ownerCred(), session.ID); !errors.Is(err, ErrAlreadyAtFinalPhase) {
		t.Fatalf("err = %v, want ErrAlreadyAtFinalPhase", err)
	}
}

func TestAdvancePhaseAuthorization(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cred    model.Credential
		wantErr error
	}{
		{"anonymous", model.Credential{Kind: model.CredentialAnonymous}, ErrNotAuthorized},
		{"wrong user", model.OwnerCredential("someone-else"), ErrNotAuthorized},
		{"unknown coadmin token", model.CoAdminCredential("ca_bogus"), ErrNotAuthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.sessions.AdvancePhase(ctx, tt.cred, session.ID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCoAdminCanAdvanceOwnSessionOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionA := env.mustCreateSession(t)
	sessionB := env.mustCreateSession(t)

	invite, err := env.coAdmins.CreateInvite(ctx, ownerCred(), sessionA.ID)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	// Not yet joined: the invite token is inactive.
	if _, err := env.sessions.AdvancePhase(ctx, model.CoAdminCredential(invite.InviteToken), sessionA.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("inactive token err = %v, want ErrNotAuthorized", err)
	}

	if _, err := env.coAdmins.Join(ctx, invite.InviteToken, "Sam"); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, err := env.sessions.AdvancePhase(ctx, model.CoAdminCredential(invite.InviteToken), sessionA.ID); err != nil {
		t.Fatalf("active token should advance: %v", err)
	}

	// Same token against another session must fail.
	if _, err := env.sessions.AdvancePhase(ctx, model.CoAdminCredential(invite.InviteToken), sessionB.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("cross-session err = %v, want ErrNotAuthorized", err)
	}
}

func TestRevertPhaseRejectsForwardAndSame(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()
	env.mustAdvanceTo(t, session.ID, model.PhaseOrganize)

	for _, target := range []model.Phase{model.PhaseOrganize, model.PhaseVote, model.PhaseResults, "bogus"} {
		if _, err := env.sessions.RevertPhase(ctx, ownerCred(), session.ID, target); !errors.Is(err, ErrInvalidRevert) {
			t.Errorf("revert to %q: err = %v, want ErrInvalidRevert", target, err)
		}
	}
}

func TestRevertPhaseCascadeDeletesRoundsAndVotes(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	participant := env.mustJoin(t, session.ID, "tok-1")
	_ = participant
	idea := env.mustCreatePostIt(t, session.ID, "idea one")
	cluster, err := env.clusters.Create(ctx, ownerCred(), session.ID, "theme", 10, 10, "")
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}

	env.mustAdvanceTo(t, session.ID, model.PhaseVote)

	round, err := env.voting.CreateRound(ctx, ownerCred(), session.ID, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if err := env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{{PostItID: idea.ID, Points: 3}}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	phase, err := env.sessions.RevertPhase(ctx, ownerCred(), session.ID, model.PhaseCollect)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if phase != model.PhaseCollect {
		t.Fatalf("phase = %q, want collect", phase)
	}

	rounds, _ := env.voting.RoundsBySession(ctx, session.ID)
	if len(rounds) != 0 {
		t.Errorf("rounds remaining = %d, want 0", len(rounds))
	}
	votes, _ := env.store.Votes().ListByRound(ctx, round.ID)
	if len(votes) != 0 {
		t.Errorf("votes remaining = %d, want 0", len(votes))
	}

	// Post-its and clusters survive the cascade.
	postIts, _ := env.postIts.BySession(ctx, session.ID)
	if len(postIts) != 1 {
		t.Errorf("post-its = %d, want 1", len(postIts))
	}
	clusters, _ := env.clusters.BySession(ctx, session.ID)
	if len(clusters) != 1 || clusters[0].ID != cluster.ID {
		t.Errorf("clusters = %v, want the original", clusters)
	}
}

func TestRevertResultsToVoteKeepsRounds(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()
	env.mustAdvanceTo(t, session.ID, model.PhaseVote)

	if _, err := env.voting.CreateRound(ctx, ownerCred(), session.ID, model.ModeStockRank, model.RoundConfig{TopN: 3}); err != nil {
		t.Fatalf("round: %v", err)
	}
	env.mustAdvanceTo(t, session.ID, model.PhaseResults)

	if _, err := env.sessions.RevertPhase(ctx, ownerCred(), session.ID, model.PhaseVote); err != nil {
		t.Fatalf("revert: %v", err)
	}
	rounds, _ := env.voting.RoundsBySession(ctx, session.ID)
	if len(rounds) != 1 {
		t.Fatalf("rounds = %d, want 1 (revert to vote keeps them)", len(rounds))
	}
}

func TestDuplicateSession(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	env.mustCreatePostIt(t, session.ID, "not copied")
	env.mustAdvanceTo(t, session.ID, model.PhaseResults)

	copy, err := env.sessions.Duplicate(ctx, ownerCred(), session.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copy.ID == session.ID {
		t.Error("duplicate reused the session ID")
	}
	if copy.ShortCode == session.ShortCode {
		t.Error("duplicate reused the short code")
	}
	if copy.Question != session.Question {
		t.Errorf("question = %q, want %q", copy.Question, session.Question)
	}
	if copy.Phase != model.PhaseCollect || copy.Status != model.SessionActive {
		t.Errorf("copy phase/status = %q/%q, want collect/active", copy.Phase, copy.Status)
	}

	postIts, _ := env.postIts.BySession(ctx, copy.ID)
	if len(postIts) != 0 {
		t.Errorf("copy has %d post-its, want 0", len(postIts))
	}
}

func TestListSessionsFiltering(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	active := env.mustCreateSession(t)
	archived := env.mustCreateSession(t)
	status := model.SessionArchived
	if _, err := env.sessions.Update(ctx, ownerCred(), archived.ID, model.SessionUpdate{Status: &status}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	sessions, err := env.sessions.List(ctx, ownerCred(), model.SessionFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != active.ID {
		t.Errorf("default list should exclude archived, got %d entries", len(sessions))
	}

	sessions, _ = env.sessions.List(ctx, ownerCred(), model.SessionFilter{IncludeArchived: true})
	if len(sessions) != 2 {
		t.Errorf("includeArchived list = %d entries, want 2", len(sessions))
	}

	sessions, _ = env.sessions.List(ctx, ownerCred(), model.SessionFilter{Status: model.SessionArchived})
	if len(sessions) != 1 || sessions[0].ID != archived.ID {
		t.Errorf("status filter should return only the archived session")
	}

	sessions, _ = env.sessions.List(ctx, model.Credential{Kind: model.CredentialAnonymous}, model.SessionFilter{})
	if len(sessions) != 0 {
		t.Errorf("anonymous list = %d entries, want 0", len(sessions))
	}
}

func TestUpdateSessionOwnerOnly(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	question := "new question"
	if _, err := env.sessions.Update(ctx, model.OwnerCredential("intruder"), session.ID, model.SessionUpdate{Question: &question}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound (existence hidden)", err)
	}

	updated, err := env.sessions.Update(ctx, ownerCred(), session.ID, model.SessionUpdate{Question: &question})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Question != question {
		t.Errorf("question = %q, want %q", updated.Question, question)
	}
}

func TestRemoveSession(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	if err := env.sessions.Remove(ctx, ownerCred(), session.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := env.sessions.Remove(ctx, ownerCred(), session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second remove err = %v, want ErrSessionNotFound", err)
	}
}

func TestTimerLifecycle(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	if err := env.sessions.StartTimer(ctx, ownerCred(), session.ID, 300); err != nil {
		t.Fatalf("start: %v", err)
	}
	got, _ := env.sessions.Get(ctx, session.ID)
	if !got.TimerEnabled || got.TimerSeconds != 300 || got.TimerStartedAt == nil {
		t.Fatalf("after start: enabled=%v seconds=%d startedAt=%v", got.TimerEnabled, got.TimerSeconds, got.TimerStartedAt)
	}

	if err := env.sessions.StopTimer(ctx, ownerCred(), session.ID); err != nil {
		t.Fatalf("stop: %v", err)
	}
	got, _ = env.sessions.Get(ctx, session.ID)
	if got.TimerEnabled || got.TimerStartedAt != nil {
		t.Fatal("stop should disable the timer")
	}
	if got.TimerSeconds != 300 {
		t.Errorf("stop should keep the duration, got %d", got.TimerSeconds)
	}

	if err := env.sessions.ResetTimer(ctx, ownerCred(), session.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ = env.sessions.Get(ctx, session.ID)
	if got.TimerSeconds != 0 {
		t.Errorf("reset should clear the duration, got %d", got.TimerSeconds)
	}
}

func TestGetByShortCode(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	found, err := env.sessions.GetByShortCode(ctx, session.ShortCode)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if found == nil || found.ID != session.ID {
		t.Fatalf("found = %v, want session %s", found, session.ID)
	}

	missing, err := env.sessions.GetByShortCode(ctx, "ZZZZZZ")
	if err != nil || missing != nil {
		t.Fatalf("missing code: got %v, %v", missing, err)
	}
}

func TestMoveToFolder(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, ownerCred(), "Workshops")
	if err != nil {
		t.Fatalf("folder: %v", err)
	}
	if err := env.sessions.MoveToFolder(ctx, ownerCred(), session.ID, folder.ID); err != nil {
		t.Fatalf("move: %v", err)
	}
	got, _ := env.sessions.Get(ctx, session.ID)
	if got.FolderID != folder.ID {
		t.Fatalf("folderID = %q, want %q", got.FolderID, folder.ID)
	}

	// Deleting the folder unassigns the session but keeps it.
	if err := env.folders.Remove(ctx, ownerCred(), folder.ID); err != nil {
		t.Fatalf("remove folder: %v", err)
	}
	got, _ = env.sessions.Get(ctx, session.ID)
	if got == nil || got.FolderID != "" {
		t.Fatalf("session after folder delete = %+v, want unassigned survivor", got)
	}
}
