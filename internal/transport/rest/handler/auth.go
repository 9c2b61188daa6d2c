package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stormboard/internal/model"
	"stormboard/internal/service"
	"stormboard/internal/transport/rest/middleware"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions shared by all handlers.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// credentialFrom builds the caller credential: facilitator identity from
// the validated JWT, co-admin and participant tokens from headers.
func credentialFrom(r *http.Request) model.Credential {
	return model.ResolveCredential(
		middleware.GetUserID(r.Context()),
		r.Header.Get("X-CoAdmin-Token"),
		r.Header.Get("X-Participant-Token"),
	)
}

// writeServiceError maps service sentinel errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrFolderNotFound),
		errors.Is(err, service.ErrPostItNotFound),
		errors.Is(err, service.ErrClusterNotFound),
		errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, service.ErrParticipantNotFound),
		errors.Is(err, service.ErrCoAdminNotFound),
		errors.Is(err, service.ErrInvalidInvite):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrPhaseNotCollect),
		errors.Is(err, service.ErrPhaseNotVote),
		errors.Is(err, service.ErrAlreadyAtFinalPhase),
		errors.Is(err, service.ErrInvalidRevert):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
