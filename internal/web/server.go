package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blockedby/starred-jobs/internal/apperror"
)

// Config holds server configuration
type Config struct {
	Port          int
	CORSOrigins   []string
	DefaultUserID int
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	listener   net.Listener
	hub        *Hub // WebSocket Hub
}

// ParseOrigins splits a comma separated origin list.
func ParseOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// NewServer creates a new HTTP server. hub may be nil.
func NewServer(cfg *Config, hub *Hub) *Server {
	router := chi.NewRouter()

	srv := &Server{
		router: router,
		config: cfg,
		hub:    hub,
	}

	srv.setupMiddleware()
	srv.setupRoutes()

	return srv
}

func (s *Server) setupMiddleware() {
	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderUserID, "X-Request-Id"},
		MaxAge:         300,
	}))
	s.router.Use(UserContext(s.config.DefaultUserID))
}

func (s *Server) setupRoutes() {
	// WebSocket
	if s.hub != nil {
		s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.hub, w, r)
		})
	}

	// Health endpoint
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok","version":"dev"}`)); err != nil {
			_ = err // Client disconnected
		}
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, apperror.NotFound("Not Found"))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		RespondErrorStatus(w, http.StatusMethodNotAllowed, "Method Not Allowed", apperror.KindValidation.Code())
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Create listener
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Port)
}

// RegisterFavoritesHandler mounts /api/favorites.
func (s *Server) RegisterFavoritesHandler(h interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}) {
	s.router.Route("/api/favorites", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{jobId}", h.Delete)
	})
}

// RegisterUsersHandler mounts /users.
func (s *Server) RegisterUsersHandler(h interface {
	List(w http.ResponseWriter, r *http.Request)
}) {
	s.router.Route("/users", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", h.List)
	})
}
