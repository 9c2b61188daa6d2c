package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/model"
	"stormboard/internal/service"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessionSvc     *service.SessionService
	participantSvc *service.ParticipantService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionSvc *service.SessionService, participantSvc *service.ParticipantService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, participantSvc: participantSvc}
}

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	Question              string `json:"question"`
	ParticipantVisibility *bool  `json:"participantVisibility,omitempty"`
	FolderID              string `json:"folderId,omitempty"`
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Create(r.Context(), credentialFrom(r), req.Question, req.ParticipantVisibility, req.FolderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// List handles GET /v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.SessionFilter{
		FolderID:        r.URL.Query().Get("folderId"),
		Status:          model.SessionStatus(r.URL.Query().Get("status")),
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
	}

	sessions, err := h.sessionSvc.List(r.Context(), credentialFrom(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// GetByCode handles GET /v1/sessions/code/{shortCode}
func (h *SessionHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.GetByShortCode(r.Context(), mux.Vars(r)["shortCode"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	count, err := h.participantSvc.Count(r.Context(), session.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":          session,
		"participantCount": count,
	})
}

// Update handles PATCH /v1/sessions/{sessionId}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update model.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Update(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /v1/sessions/{sessionId}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.Remove(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Duplicate handles POST /v1/sessions/{sessionId}/duplicate
func (h *SessionHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Duplicate(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// MoveToFolderRequest is the request body for assigning a session to a
// folder. An empty folderId clears the assignment.
type MoveToFolderRequest struct {
	FolderID string `json:"folderId"`
}

// MoveToFolder handles PUT /v1/sessions/{sessionId}/folder
func (h *SessionHandler) MoveToFolder(w http.ResponseWriter, r *http.Request) {
	var req MoveToFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessionSvc.MoveToFolder(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.FolderID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AdvancePhase handles POST /v1/sessions/{sessionId}/phase/advance
func (h *SessionHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	phase, err := h.sessionSvc.AdvancePhase(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Phase{"phase": phase})
}

// RevertPhaseRequest names the phase to revert to.
type RevertPhaseRequest struct {
	Phase model.Phase `json:"phase"`
}

// RevertPhase handles POST /v1/sessions/{sessionId}/phase/revert
func (h *SessionHandler) RevertPhase(w http.ResponseWriter, r *http.Request) {
	var req RevertPhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	phase, err := h.sessionSvc.RevertPhase(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.Phase)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Phase{"phase": phase})
}

// TimerRequest carries the countdown duration for starting a timer.
type TimerRequest struct {
	Seconds int `json:"seconds"`
}

// StartTimer handles POST /v1/sessions/{sessionId}/timer/start
func (h *SessionHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	var req TimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessionSvc.StartTimer(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.Seconds); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// StopTimer handles POST /v1/sessions/{sessionId}/timer/stop
func (h *SessionHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.StopTimer(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// ResetTimer handles POST /v1/sessions/{sessionId}/timer/reset
func (h *SessionHandler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.ResetTimer(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
