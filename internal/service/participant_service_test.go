package service

import (
	"context"
	"errors"
	"testing"

	"stormboard/internal/model"
)

func TestJoinIdempotentPerTokenAndSession(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	first := env.mustJoin(t, session.ID, "tok-1")
	second := env.mustJoin(t, session.ID, "tok-1")
	if first.ID != second.ID {
		t.Fatalf("re-join created a new participant: %s vs %s", first.ID, second.ID)
	}

	count, _ := env.participants.Count(ctx, session.ID)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestJoinRequiresActiveSession(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	status := model.SessionCompleted
	if _, err := env.sessions.Update(ctx, ownerCred(), session.ID, model.SessionUpdate{Status: &status}); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	if _, err := env.participants.Join(ctx, session.ID, "tok-1"); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("err = %v, want ErrSessionNotActive", err)
	}
	if _, err := env.participants.Join(ctx, "missing", "tok-1"); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("missing session err = %v, want ErrSessionNotActive", err)
	}
}

func TestReconnect(t *testing.T) {
	env := newTestEnv()
	sessionA := env.mustCreateSession(t)
	sessionB := env.mustCreateSession(t)
	ctx := context.Background()

	joined := env.mustJoin(t, sessionA.ID, "tok-1")

	found, err := env.participants.Reconnect(ctx, "tok-1", sessionA.ID)
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	if found == nil || found.ID != joined.ID {
		t.Fatalf("reconnect = %v, want participant %s", found, joined.ID)
	}

	// Unknown token and cross-session token both come back nil.
	if found, _ := env.participants.Reconnect(ctx, "tok-unknown", sessionA.ID); found != nil {
		t.Fatalf("unknown token reconnect = %+v, want nil", found)
	}
	if found, _ := env.participants.Reconnect(ctx, "tok-1", sessionB.ID); found != nil {
		t.Fatalf("cross-session reconnect = %+v, want nil", found)
	}
}
