package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/service"
)

// BookHandler serves the /api/books endpoints, plus the destructive
// DELETE /api/reset used to wipe catalog data between grading runs.
type BookHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(catalog *service.CatalogService, logger *slog.Logger) *BookHandler {
	return &BookHandler{catalog: catalog, logger: logger}
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BookCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	book, err := h.catalog.CreateBook(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// List handles GET /api/books with optional ?limit= and ?offset=.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	books, err := h.catalog.ListBooks(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// ListByAuthor handles GET /api/books/by-author/{id}.
//
// An unknown author yields 200 with an empty list, not 404 — "this
// author has no books" and "no such author" look the same here.
func (h *BookHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListBooksByAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// Update handles PATCH (and PUT) /api/books/{id} with partial-update semantics.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.BookUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	book, err := h.catalog.UpdateBook(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /api/books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset handles DELETE /api/reset. It wipes books, artifacts, and
// authors (in that order, children before parents) and reports how many
// rows went away. User accounts survive a reset.
func (h *BookHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
