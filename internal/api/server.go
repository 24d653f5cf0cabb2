// Package api provides the HTTP API server and handlers for the Aura application.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/auraapp/aura-server/internal/auth"
	"github.com/auraapp/aura-server/internal/http/response"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
	"github.com/auraapp/aura-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	tagService     *service.TagService
	entryService   *service.EntryService
	insightService *service.InsightService
	summaryService *service.SummaryService
	tokens         *auth.TokenService
	validator      *validation.Validator
	router         *chi.Mux
	corsOrigins    []string
	logger         *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	authService *service.AuthService,
	profileService *service.ProfileService,
	tagService *service.TagService,
	entryService *service.EntryService,
	insightService *service.InsightService,
	summaryService *service.SummaryService,
	tokens *auth.TokenService,
	corsOrigins []string,
	log *logger.Logger,
) *Server {
	s := &Server{
		authService:    authService,
		profileService: profileService,
		tagService:     tagService,
		entryService:   entryService,
		insightService: insightService,
		summaryService: summaryService,
		tokens:         tokens,
		validator:      validation.New(),
		router:         chi.NewRouter(),
		corsOrigins:    corsOrigins,
		logger:         log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-profile-id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Every route sees the resolved actor; requireAuth gates the ones
		// that need an owner, requireBearer the ones that mutate the
		// profile itself.
		r.Use(s.resolveActor)

		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
		})

		// Profiles.
		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.handleCreateProfile)

			r.Group(func(r chi.Router) {
				r.Use(s.requireBearer)
				r.Get("/me", s.handleGetMyProfile)
				r.Patch("/me", s.handleUpdateMyProfile)
				r.Patch("/me/avatar", s.handleUploadAvatar)
			})
		})

		// Tags.
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListSystemTags)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateTag)
				r.Get("/mine", s.handleListMyTags)
			})
		})

		// Mood entries.
		r.Route("/mood-entries", func(r chi.Router) {
			r.Get("/", s.handleListFeed)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateEntry)
				r.Get("/mine", s.handleListMyEntries)
				r.Delete("/{id}", s.handleDeleteEntry)
			})
		})

		// Insights.
		r.Route("/insights", func(r chi.Router) {
			r.Get("/public", s.handlePublicInsights)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/mine", s.handlePersonalInsights)
				r.Get("/mine/summary", s.handlePersonalSummary)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger.Logger)
}
