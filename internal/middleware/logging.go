// Package middleware contains HTTP middleware functions.
//
// WHAT IS MIDDLEWARE?
// Middleware is a function that wraps an HTTP handler to add cross-cutting behaviour
// (logging, auth, CORS, etc.) without modifying the handler itself.
//
// The pattern is:
//
//	func MyMiddleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // Do something BEFORE the handler runs
//	        next.ServeHTTP(w, r)  // Call the actual handler
//	        // Do something AFTER the handler runs
//	    })
//	}
//
// This is the "decorator pattern" — we wrap the real handler with extra behaviour.
//
// Stack order in this app (outermost first): RequestID → RealIP →
// Logger → Recoverer → CORS → routes. The logger sits inside RequestID
// so every log line can carry the request's ID.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
// Go's http.ResponseWriter doesn't expose the status code after WriteHeader
// is called, so we wrap it to track it ourselves. This is a common Go pattern.
type statusRecorder struct {
	http.ResponseWriter       // Embedding: this struct "inherits" all methods
	status              int   // Our addition: track the status code
	bytes               int64 // Track bytes written
}

// WriteHeader captures the status code before delegating to the embedded
// ResponseWriter. Defining this method "overrides" the embedded one.
func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Write counts response bytes and delegates to the embedded ResponseWriter.
// A handler that never calls WriteHeader implicitly sends 200 on first
// Write, which is why statusRecorder starts at http.StatusOK.
func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Logger returns an HTTP middleware that logs one structured line per
// completed request using slog.
//
// Each line carries: request ID (from chi's RequestID middleware, empty
// if that middleware isn't mounted), method, path, status, duration,
// and bytes written. Query strings are deliberately left out — they can
// carry tokens.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			logger.Info("request completed",
				slog.String("requestID", chimw.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
			)
		})
	}
}
