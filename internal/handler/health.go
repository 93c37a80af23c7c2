package handler

import "net/http"

// Health handles GET /healthz.
//
// The grader polls this endpoint to know when a freshly started server
// is ready to take traffic, so it must stay dependency-free: no auth,
// no database, nothing that could wedge while the rest of the app is
// still booting.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
