package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/service"
)

// PostItHandler handles post-it endpoints.
type PostItHandler struct {
	postItSvc *service.PostItService
}

// NewPostItHandler creates a new post-it handler.
func NewPostItHandler(postItSvc *service.PostItService) *PostItHandler {
	return &PostItHandler{postItSvc: postItSvc}
}

// CreatePostItRequest is the request body for adding a post-it.
type CreatePostItRequest struct {
	Text string `json:"text"`
}

// Create handles POST /v1/sessions/{sessionId}/postits
func (h *PostItHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostItRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	postIt, err := h.postItSvc.Create(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, postIt)
}

// List handles GET /v1/sessions/{sessionId}/postits
func (h *PostItHandler) List(w http.ResponseWriter, r *http.Request) {
	postIts, err := h.postItSvc.BySession(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"postIts": postIts})
}

// UpdateTextRequest is the request body for editing a post-it's text.
type UpdateTextRequest struct {
	Text string `json:"text"`
}

// UpdateText handles PUT /v1/postits/{postItId}/text
func (h *PostItHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	var req UpdateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.postItSvc.UpdateText(r.Context(), credentialFrom(r), mux.Vars(r)["postItId"], req.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MoveRequest is the request body for repositioning a post-it.
type MoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Move handles PUT /v1/postits/{postItId}/position
func (h *PostItHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.postItSvc.Move(r.Context(), credentialFrom(r), mux.Vars(r)["postItId"], req.X, req.Y); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetClusterRequest assigns a post-it to a cluster. An empty clusterId
// unassigns it.
type SetClusterRequest struct {
	ClusterID string `json:"clusterId"`
}

// SetCluster handles PUT /v1/postits/{postItId}/cluster
func (h *PostItHandler) SetCluster(w http.ResponseWriter, r *http.Request) {
	var req SetClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.postItSvc.SetCluster(r.Context(), credentialFrom(r), mux.Vars(r)["postItId"], req.ClusterID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles DELETE /v1/postits/{postItId}
func (h *PostItHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.postItSvc.Remove(r.Context(), credentialFrom(r), mux.Vars(r)["postItId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
