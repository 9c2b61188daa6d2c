package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/service"
)

// ParticipantHandler handles participant join and reconnect endpoints.
type ParticipantHandler struct {
	participantSvc *service.ParticipantService
}

// NewParticipantHandler creates a new participant handler.
func NewParticipantHandler(participantSvc *service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantSvc: participantSvc}
}

// JoinRequest is the request body for joining a session. The display token
// is stable per browser and reused on reconnect; an absent token gets one
// minted server-side.
type JoinRequest struct {
	DisplayToken string `json:"displayToken,omitempty"`
}

// Join handles POST /v1/sessions/{sessionId}/participants
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participant, err := h.participantSvc.Join(r.Context(), mux.Vars(r)["sessionId"], req.DisplayToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participant)
}

// Reconnect handles GET /v1/sessions/{sessionId}/participants/me
func (h *ParticipantHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing participant token")
		return
	}

	participant, err := h.participantSvc.Reconnect(r.Context(), token, mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if participant == nil {
		writeError(w, http.StatusNotFound, "participant not found")
		return
	}
	writeJSON(w, http.StatusOK, participant)
}

// List handles GET /v1/sessions/{sessionId}/participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.participantSvc.BySession(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"participants": participants})
}
