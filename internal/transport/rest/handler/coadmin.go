package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/service"
)

// CoAdminHandler handles co-admin invite endpoints.
type CoAdminHandler struct {
	coAdminSvc *service.CoAdminService
}

// NewCoAdminHandler creates a new co-admin handler.
func NewCoAdminHandler(coAdminSvc *service.CoAdminService) *CoAdminHandler {
	return &CoAdminHandler{coAdminSvc: coAdminSvc}
}

// CreateInvite handles POST /v1/sessions/{sessionId}/coadmin/invite
func (h *CoAdminHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	coAdmin, err := h.coAdminSvc.CreateInvite(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coAdmin)
}

// Get handles GET /v1/sessions/{sessionId}/coadmin
func (h *CoAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	coAdmin, err := h.coAdminSvc.GetBySession(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"coAdmin": coAdmin})
}

// Revoke handles DELETE /v1/sessions/{sessionId}/coadmin
func (h *CoAdminHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.coAdminSvc.Revoke(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// JoinCoAdminRequest is the request body for joining as co-admin.
type JoinCoAdminRequest struct {
	InviteToken string `json:"inviteToken"`
	DisplayName string `json:"displayName"`
}

// Join handles POST /v1/coadmin/join
func (h *CoAdminHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinCoAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coAdmin, err := h.coAdminSvc.Join(r.Context(), req.InviteToken, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coAdmin)
}
