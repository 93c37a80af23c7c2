// Package handler contains the HTTP layer: parsing requests, invoking
// services, and writing JSON responses. Handlers never touch the
// database and never contain business rules — that is the service
// layer's job.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/service"
)

// AuthorHandler serves the /api/authors endpoints.
type AuthorHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewAuthorHandler creates an AuthorHandler.
func NewAuthorHandler(catalog *service.CatalogService, logger *slog.Logger) *AuthorHandler {
	return &AuthorHandler{catalog: catalog, logger: logger}
}

// Create handles POST /api/authors.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	author, err := h.catalog.CreateAuthor(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, author)
}

// Get handles GET /api/authors/{id}.
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	author, err := h.catalog.GetAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, author)
}

// List handles GET /api/authors with optional ?limit= and ?offset=.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	authors, err := h.catalog.ListAuthors(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authors)
}

// Update handles PATCH (and PUT) /api/authors/{id}. The body is a partial update —
// absent fields keep their stored values.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	author, err := h.catalog.UpdateAuthor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, author)
}

// Delete handles DELETE /api/authors/{id}.
//
// 204 No Content on success: there is nothing useful to say about a
// deleted resource, so we say nothing.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAuthor(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
