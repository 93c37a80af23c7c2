package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/service"
)

// ArtifactHandler serves the /api/artifacts endpoints: geolocated items
// arranged in a parent/child tree. Creation requires auth; reads are
// public.
type ArtifactHandler struct {
	artifacts *service.ArtifactService
	logger    *slog.Logger
}

// NewArtifactHandler creates an ArtifactHandler.
func NewArtifactHandler(artifacts *service.ArtifactService, logger *slog.Logger) *ArtifactHandler {
	return &ArtifactHandler{artifacts: artifacts, logger: logger}
}

// Create handles POST /api/artifacts. The owner is whoever holds the
// token — there is deliberately no ownerId field in the request body.
func (h *ArtifactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.ArtifactCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	artifact, err := h.artifacts.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, artifact)
}

// Get handles GET /api/artifacts/{id}. The response embeds the IDs of
// direct children so a client can walk the tree one level at a time.
func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.artifacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, artifact)
}

// Children handles GET /api/artifacts/{id}/children. Asking for the
// children of a missing artifact is 404, not an empty list.
func (h *ArtifactHandler) Children(w http.ResponseWriter, r *http.Request) {
	children, err := h.artifacts.Children(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ArtifactChildren{Children: children})
}
