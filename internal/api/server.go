package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lernify/road-api/internal/auth"
	"github.com/lernify/road-api/internal/cache"
	"github.com/lernify/road-api/internal/config"
	"github.com/lernify/road-api/internal/curriculum"
	"github.com/lernify/road-api/internal/progress"
	"github.com/lernify/road-api/internal/resume"
	"github.com/lernify/road-api/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	authService    *auth.Service
	tracker        *progress.Tracker
	resumes        *resume.Service
	catalog        *curriculum.Catalog
	repo           storage.Repository
	tokens         *cache.TokenCache
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	authService *auth.Service,
	tracker *progress.Tracker,
	resumes *resume.Service,
	catalog *curriculum.Catalog,
	repo storage.Repository,
	tokens *cache.TokenCache,
) *Server {
	s := &Server{
		config:         cfg,
		authService:    authService,
		tracker:        tracker,
		resumes:        resumes,
		catalog:        catalog,
		repo:           repo,
		tokens:         tokens,
		authMiddleware: NewAuthMiddleware(authService),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/domains", s.handleDomains)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.Authenticate)
			r.Post("/change-password", s.handleChangePassword)
			r.Post("/logout", s.handleLogout)
		})
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware.Authenticate)

		r.Get("/roadmap/{domain}", s.handleRoadmap)
		r.Post("/assessment/submit", s.handleSubmit)

		r.Get("/me", s.handleMe)
		r.Put("/me", s.handleUpdateMe)
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/resume", func(r chi.Router) {
			r.Post("/", s.handleSaveResume)
			r.Get("/", s.handleGetResume)
			r.Get("/download", s.handleDownloadResume)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
