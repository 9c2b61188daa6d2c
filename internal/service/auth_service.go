package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// AuthService authenticates the facilitator account and resolves caller
// credentials against sessions.
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte

	sessionRepo     repository.SessionRepo
	coAdminRepo     repository.CoAdminRepo
	participantRepo repository.ParticipantRepo
}

// NewAuthService creates a new auth service. Username and password come
// from configuration; the facilitator's stable identity is the username.
func NewAuthService(username, password, jwtSecret string, sessionRepo repository.SessionRepo, coAdminRepo repository.CoAdminRepo, participantRepo repository.ParticipantRepo) *AuthService {
	return &AuthService{
		username:        username,
		password:        password,
		jwtSecret:       []byte(jwtSecret),
		sessionRepo:     sessionRepo,
		coAdminRepo:     coAdminRepo,
		participantRepo: participantRepo,
	}
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}

	claims := &model.FacilitatorClaims{
		UserID: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: tokenString, UserID: username}, nil
}

// ValidateToken validates a facilitator JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.FacilitatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.FacilitatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.FacilitatorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AuthorizeSession resolves a credential against a session: the owner
// identity is checked first, then an active co-admin token belonging to
// this session. Returns the session when authorized.
func (s *AuthService) AuthorizeSession(ctx context.Context, cred model.Credential, sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if cred.UserID != "" && session.UserID == cred.UserID {
		return session, nil
	}

	if cred.CoAdminToken != "" {
		coAdmin, err := s.coAdminRepo.GetByToken(ctx, cred.CoAdminToken)
		if err != nil {
			return nil, err
		}
		if coAdmin != nil && coAdmin.SessionID == sessionID && coAdmin.IsActive {
			return session, nil
		}
	}

	return nil, ErrNotAuthorized
}

// RequireOwner resolves a credential for owner-only operations. A missing
// identity fails ErrNotAuthenticated; a session that does not exist or is
// owned by someone else fails ErrSessionNotFound, hiding its existence.
func (s *AuthService) RequireOwner(ctx context.Context, cred model.Credential, sessionID string) (*model.Session, error) {
	if cred.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != cred.UserID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ResolveParticipant validates a display token against a session. Tokens
// are scoped to the session they were created in; a token minted for
// another session fails ErrParticipantNotFound.
func (s *AuthService) ResolveParticipant(ctx context.Context, participantToken, sessionID string) (*model.Participant, error) {
	participant, err := s.participantRepo.GetByToken(ctx, participantToken)
	if err != nil {
		return nil, err
	}
	if participant == nil || participant.SessionID != sessionID {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}
