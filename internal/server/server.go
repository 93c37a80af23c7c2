// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go reads config and calls New(), which assembles the whole chain:
//
//	sqlite.DB → services (Catalog/Account/Shelf/Artifact) → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired in
// one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/handler"
	"github.com/sakif/course-api/internal/middleware"
	sqliteRepo "github.com/sakif/course-api/internal/repository/sqlite"
	"github.com/sakif/course-api/internal/service"
	"github.com/sakif/course-api/internal/session"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy to:
// - Add new config options without changing function signatures
// - Pass config around as a single value
// - Load config from files/env vars in one place
type Config struct {
	Port      int
	DBPath    string // path to the SQLite database file
	JWTSecret string // HMAC secret for signing access tokens (min 16 chars)

	// BcryptCost overrides the password hashing work factor. Zero means
	// the production default; tests pass bcrypt.MinCost so the full-stack
	// suite doesn't pay ~250ms per registration.
	BcryptCost int
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns a database connection (db). When the server shuts down,
// we must close this connection to flush any pending writes and release
// the file lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config.
//
// Each layer only receives what it needs:
// - Services get repository interfaces (not the concrete sqlite.DB)
// - Handlers get services (not the repository or DB)
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /healthz                      → readiness probe (no auth, no DB)
//	POST   /api/auth/register            → create account + issue token
//	POST   /api/auth/login               → verify credentials + issue token
//	POST   /api/auth/logout              → expire the token cookie
//	GET    /api/me                       → current user          [auth]
//	CRUD   /api/authors, /api/books      → catalog (public)
//	GET    /api/books/by-author/{id}     → catalog filter
//	DELETE /api/reset                    → wipe catalog data
//	GET/POST /api/shelf, DELETE /{id}    → per-user books        [auth]
//	POST   /api/artifacts                → create artifact       [auth]
//	GET    /api/artifacts/{id}[/children]→ artifact reads (public)
//	POST   /api/session/login            → cookie-session demo
//	GET/PUT /api/preferences             → session preferences
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Logger — logs each request with timing info
// 4. Recoverer — catches panics and returns 500 instead of crashing
// 5. CORS — lets the browser-based course frontends call the API
func (s *Server) setupRoutes() error {
	// === Global Middleware ===
	// These run on EVERY request, in order
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// AllowCredentials is required because auth rides on cookies; with
	// credentials on, the browser refuses a wildcard origin, so we echo
	// the caller's origin instead.
	s.router.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// === Auth plumbing ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	if s.config.BcryptCost != 0 {
		passwords = auth.NewPasswordServiceForTest(s.config.BcryptCost)
	}

	// === Services ===
	// s.db implements every repository interface, so it is passed
	// wherever a repository is needed. Swapping storage backends means
	// changing only these lines.
	catalogService := service.NewCatalogService(s.db, s.db, s.db, s.logger)
	accountService := service.NewAccountService(s.db, tokens, passwords, s.logger)
	shelfService := service.NewShelfService(s.db, s.db, s.logger)
	artifactService := service.NewArtifactService(s.db, s.logger)
	sessions := session.NewStore()

	// === Handlers ===
	authorHandler := handler.NewAuthorHandler(catalogService, s.logger)
	bookHandler := handler.NewBookHandler(catalogService, s.logger)
	authHandler := handler.NewAuthHandler(accountService, s.logger)
	shelfHandler := handler.NewShelfHandler(shelfService, s.logger)
	artifactHandler := handler.NewArtifactHandler(artifactService, s.logger)
	prefsHandler := handler.NewPreferencesHandler(sessions, s.logger)

	s.router.Get("/healthz", handler.Health)

	s.router.Route("/api", func(r chi.Router) {
		// --- Public catalog routes ---
		r.Get("/authors", authorHandler.List)
		r.Post("/authors", authorHandler.Create)
		r.Get("/authors/{id}", authorHandler.Get)
		// PATCH is the canonical partial-update verb; PUT is accepted as
		// an alias for clients that only speak PUT. Same handler, same
		// only-provided-fields-change semantics.
		r.Patch("/authors/{id}", authorHandler.Update)
		r.Put("/authors/{id}", authorHandler.Update)
		r.Delete("/authors/{id}", authorHandler.Delete)

		r.Get("/books", bookHandler.List)
		r.Post("/books", bookHandler.Create)
		r.Get("/books/by-author/{id}", bookHandler.ListByAuthor)
		r.Get("/books/{id}", bookHandler.Get)
		r.Patch("/books/{id}", bookHandler.Update)
		r.Put("/books/{id}", bookHandler.Update)
		r.Delete("/books/{id}", bookHandler.Delete)

		r.Delete("/reset", bookHandler.Reset)

		// --- Auth routes ---
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// --- Cookie-session demo ---
		r.Post("/session/login", prefsHandler.SessionLogin)
		r.Get("/preferences", prefsHandler.GetPreferences)
		r.Put("/preferences", prefsHandler.UpdatePreferences)

		// --- Header inspection demo ---
		r.Get("/headers", handler.HeadersEcho)

		// --- Public artifact reads ---
		r.Get("/artifacts/{id}", artifactHandler.Get)
		r.Get("/artifacts/{id}/children", artifactHandler.Children)

		// --- Protected routes ---
		// r.Group creates a sub-router sharing the parent's path prefix
		// but with extra middleware — everything inside requires a
		// valid token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.Me)

			r.Get("/shelf", shelfHandler.List)
			r.Post("/shelf", shelfHandler.Add)
			r.Delete("/shelf/{id}", shelfHandler.Remove)

			r.Post("/artifacts", artifactHandler.Create)
		})
	})

	return nil
}

// Router exposes the configured router so tests can drive the full
// middleware + routing stack through httptest without opening a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start's
// signal loop. Tests use this; production shutdown happens in Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// If we skip step 3, the database file might be left in an inconsistent
// state. The `defer s.db.Close()` ensures this happens even on panic.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
