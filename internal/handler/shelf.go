package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/service"
)

// ShelfHandler serves the /api/shelf endpoints. Every route here sits
// behind RequireAuth, so a missing user ID in context is a programming
// error (wrong router wiring), not a client mistake — we still answer
// 401 rather than panic.
type ShelfHandler struct {
	shelf  *service.ShelfService
	logger *slog.Logger
}

// NewShelfHandler creates a ShelfHandler.
func NewShelfHandler(shelf *service.ShelfService, logger *slog.Logger) *ShelfHandler {
	return &ShelfHandler{shelf: shelf, logger: logger}
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return "", false
	}
	return userID, true
}

// List handles GET /api/shelf — the caller's own books only.
func (h *ShelfHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	books, err := h.shelf.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// Add handles POST /api/shelf.
func (h *ShelfHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.ShelfBookCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	book, err := h.shelf.Add(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Remove handles DELETE /api/shelf/{id}. Deleting someone else's book
// is 403, a missing book is 404 — the service draws that line.
func (h *ShelfHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.shelf.Remove(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
