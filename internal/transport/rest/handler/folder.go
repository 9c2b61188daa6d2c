package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/service"
)

// FolderHandler handles folder endpoints.
type FolderHandler struct {
	folderSvc *service.FolderService
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folderSvc *service.FolderService) *FolderHandler {
	return &FolderHandler{folderSvc: folderSvc}
}

// FolderRequest is the request body for creating or renaming a folder.
type FolderRequest struct {
	Name string `json:"name"`
}

// List handles GET /v1/folders
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderSvc.List(r.Context(), credentialFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

// Create handles POST /v1/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderSvc.Create(r.Context(), credentialFrom(r), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// Rename handles PUT /v1/folders/{folderId}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.folderSvc.Rename(r.Context(), credentialFrom(r), mux.Vars(r)["folderId"], req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles DELETE /v1/folders/{folderId}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.folderSvc.Remove(r.Context(), credentialFrom(r), mux.Vars(r)["folderId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
