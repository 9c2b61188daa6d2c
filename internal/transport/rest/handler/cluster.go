package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/model"
	"stormboard/internal/service"
)

// ClusterHandler handles cluster endpoints.
type ClusterHandler struct {
	clusterSvc *service.ClusterService
}

// NewClusterHandler creates a new cluster handler.
func NewClusterHandler(clusterSvc *service.ClusterService) *ClusterHandler {
	return &ClusterHandler{clusterSvc: clusterSvc}
}

// CreateClusterRequest is the request body for creating a cluster.
type CreateClusterRequest struct {
	Label     string  `json:"label"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
	Color     string  `json:"color,omitempty"`
}

// Create handles POST /v1/sessions/{sessionId}/clusters
func (h *ClusterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cluster, err := h.clusterSvc.Create(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.Label, req.PositionX, req.PositionY, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cluster)
}

// List handles GET /v1/sessions/{sessionId}/clusters
func (h *ClusterHandler) List(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.clusterSvc.BySession(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clusters": clusters})
}

// Update handles PATCH /v1/clusters/{clusterId}
func (h *ClusterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update model.ClusterUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.clusterSvc.Update(r.Context(), credentialFrom(r), mux.Vars(r)["clusterId"], update); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles DELETE /v1/clusters/{clusterId}
func (h *ClusterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clusterSvc.Remove(r.Context(), credentialFrom(r), mux.Vars(r)["clusterId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
