package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/session"
)

// PreferencesHandler serves the cookie-session demo routes:
//
//	POST /api/session/login  → issue a session_id cookie
//	GET  /api/preferences    → read this session's preferences
//	PUT  /api/preferences    → replace this session's preferences
//
// STATEFUL SESSIONS vs JWT:
// This is the opposite model to /api/auth. The cookie value is an
// opaque random ID; everything it identifies lives server-side in an
// in-memory store. The server can revoke a session instantly (delete
// the map entry), but state dies with the process. The JWT routes make
// the reverse trade.
type PreferencesHandler struct {
	sessions *session.Store
	logger   *slog.Logger
}

// NewPreferencesHandler creates a PreferencesHandler.
func NewPreferencesHandler(sessions *session.Store, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{sessions: sessions, logger: logger}
}

// SessionLogin handles POST /api/session/login. It creates a fresh
// session with default preferences and hands back the cookie.
func (h *PreferencesHandler) SessionLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	id := h.sessions.Create(dto.Preferences{Theme: "light"})

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("session created", slog.String("username", req.Username))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "session started for " + req.Username,
	})
}

// sessionID extracts and validates the session cookie, answering 401
// itself when the cookie is missing or names a session the store has
// never seen (e.g. the server restarted since it was issued).
func (h *PreferencesHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		// The only error http.Request.Cookie returns is ErrNoCookie.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "no active session",
		})
		return "", false
	}

	if _, ok := h.sessions.Get(cookie.Value); !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "session expired or unknown",
		})
		return "", false
	}

	return cookie.Value, true
}

// GetPreferences handles GET /api/preferences.
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	prefs, _ := h.sessions.Get(id)
	writeJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/preferences. The body replaces the
// stored preferences wholesale.
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var prefs dto.Preferences
	if !decodeJSON(w, r, &prefs) {
		return
	}
	if err := dto.Validate(prefs); err != nil {
		writeError(w, err)
		return
	}

	if !h.sessions.Set(id, prefs) {
		// Session vanished between the check and the write. Rare, but
		// the store is shared mutable state — treat it as logged out.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "session expired or unknown",
		})
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}
