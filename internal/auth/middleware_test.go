package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// okHandler records whether it ran and what user ID it saw.
type okHandler struct {
	called bool
	userID string
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID, _ = UserIDFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	tokens := newTestTokens(t)
	token, _ := tokens.Generate("user-123")

	inner := &okHandler{}
	mw := RequireAuth(tokens)(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !inner.called {
		t.Fatal("inner handler never ran")
	}
	if inner.userID != "user-123" {
		t.Errorf("userID in context = %q, want %q", inner.userID, "user-123")
	}
}

func TestRequireAuth_Cookie(t *testing.T) {
	tokens := newTestTokens(t)
	token, _ := tokens.Generate("user-456")

	inner := &okHandler{}
	mw := RequireAuth(tokens)(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if inner.userID != "user-456" {
		t.Errorf("userID in context = %q, want %q", inner.userID, "user-456")
	}
}

func TestRequireAuth_NoToken(t *testing.T) {
	tokens := newTestTokens(t)

	inner := &okHandler{}
	mw := RequireAuth(tokens)(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if inner.called {
		t.Error("inner handler ran despite missing token")
	}
	if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	tokens := newTestTokens(t)

	inner := &okHandler{}
	mw := RequireAuth(tokens)(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	tokens := newTestTokens(t)

	inner := &okHandler{}
	mw := OptionalAuth(tokens)(inner)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if inner.userID != "" {
		t.Errorf("anonymous request carried userID %q", inner.userID)
	}
}
