package handler

import (
	"net/http"
	"strings"
)

// headerTokenPrefix is what a well-formed X-Token header must start
// with. Anything else is rejected so clients learn early that the
// header is malformed rather than silently ignored.
const headerTokenPrefix = "tok-"

// HeadersEcho handles GET /api/headers — the request-header inspection
// demo. It reflects the caller's User-Agent and X-Token back as JSON.
//
// Rules:
//   - User-Agent is reported as-is, or "unknown" when absent (Go's
//     http client always sends one, curl and browsers too, but a raw
//     TCP client might not).
//   - X-Token is optional, but when present it must start with "tok-";
//     a malformed token is a 400, not a silent pass-through.
func HeadersEcho(w http.ResponseWriter, r *http.Request) {
	userAgent := r.Header.Get("User-Agent")
	if userAgent == "" {
		userAgent = "unknown"
	}

	token := r.Header.Get("X-Token")
	if token != "" && !strings.HasPrefix(token, headerTokenPrefix) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "X-Token must start with " + headerTokenPrefix,
		})
		return
	}

	resp := map[string]string{
		"userAgent": userAgent,
	}
	if token != "" {
		resp["token"] = token
	}

	writeJSON(w, http.StatusOK, resp)
}
