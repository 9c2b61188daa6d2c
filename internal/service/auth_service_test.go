package service

import (
	"errors"
	"testing"
)

func TestLogin(t *testing.T) {
	env := newTestEnv()

	resp, err := env.auth.Login(testUser, testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.UserID != testUser {
		t.Fatalf("resp = %+v", resp)
	}

	claims, err := env.auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != testUser {
		t.Fatalf("claims.UserID = %q, want %q", claims.UserID, testUser)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", testUser, "nope"},
		{"wrong username", "nobody", testPassword},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.auth.Login(tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv()
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := env.auth.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	env := newTestEnv()
	other := NewAuthService(testUser, testPassword, "other-secret", env.store.Sessions(), env.store.CoAdmins(), env.store.Participants())

	resp, err := other.Login(testUser, testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := env.auth.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign token err = %v, want ErrInvalidToken", err)
	}
}
