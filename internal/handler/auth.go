package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/service"
)

// AuthHandler serves /api/auth/* and GET /api/me.
//
// TOKEN DELIVERY — BOTH CHANNELS:
// The issued JWT goes out twice: in the JSON body (for API clients that
// send Authorization: Bearer headers) and as an HttpOnly cookie (for
// browsers, where JavaScript must never be able to read the token).
// The middleware accepts either on the way back in.
type AuthHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts *service.AccountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

// setTokenCookie attaches the JWT as an HttpOnly session cookie.
//
// SameSite=Lax stops the cookie from riding along on cross-site POSTs,
// which is the classic CSRF vector.
func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.AccessTokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /api/auth/register. A new account is logged in
// immediately — no separate login round-trip after signup.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, dto.TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
	})
}

// Logout handles POST /api/auth/logout.
//
// JWTs are stateless — the server keeps no session to destroy. All we
// can do is expire the cookie; a token saved elsewhere stays valid
// until its TTL runs out. (Real revocation needs a denylist, which is
// out of scope here.)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // MaxAge < 0 tells the browser to delete the cookie now
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/me. The middleware has already validated the
// token; we just look up whoever it names. PasswordHash is json:"-" on
// the model, so the hash can never appear in the response.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	user, err := h.accounts.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
