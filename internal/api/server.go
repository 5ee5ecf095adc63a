package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/devfolio/devfolio/internal/auth"
	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/llm"
	"github.com/devfolio/devfolio/internal/roadmap"
	"github.com/devfolio/devfolio/internal/store"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = 15 * time.Minute
)

type Server struct {
	router    chi.Router
	store     *store.Store
	provider  llm.Provider
	parser    roadmap.Parser
	jwtSecret []byte
}

// Config controls server behaviour not derived from its collaborators.
type Config struct {
	JWTSecret      string
	AllowedOrigins []string
}

// DefaultConfig reads the standard configuration from the environment.
func DefaultConfig() Config {
	cfg := Config{
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}
	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGIN")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return cfg
}

func NewServer(st *store.Store, provider llm.Provider, cfg Config) (*Server, error) {
	logger := common.Logger()
	if st == nil {
		return nil, fmt.Errorf("store required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info("api: building server", "provider", providerName, "origins", cfg.AllowedOrigins)
	srv := &Server{
		router:    chi.NewRouter(),
		store:     st,
		provider:  provider,
		jwtSecret: []byte(cfg.JWTSecret),
	}
	srv.routes(cfg)
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(cfg Config) {
	logger := common.Logger()
	logger.Info("api: configuring routes")

	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(httprate.LimitByIP(rateLimitRequests, rateLimitWindow))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/logs", s.handleLogs)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/projects/community", s.handleCommunityProjects)
		r.Get("/explore", s.handleExploreFeed)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.jwtSecret, s.store))

			r.Get("/user/profile", s.handleGetProfile)
			r.Put("/user/profile", s.handleUpdateProfile)
			r.Get("/user/settings", s.handleGetSettings)
			r.Put("/user/settings", s.handleUpdateSettings)

			r.Post("/projects", s.handleCreateProject)
			r.Get("/projects", s.handleListProjects)
			r.Get("/projects/{projectID}", s.handleGetProject)
			r.Put("/projects/{projectID}", s.handleUpdateProject)
			r.Delete("/projects/{projectID}", s.handleDeleteProject)
			r.Post("/projects/{projectID}/star", s.handleStarProject)
			r.Post("/projects/{projectID}/fork", s.handleForkProject)
			r.Put("/projects/{projectID}/roadmap", s.handleSaveRoadmap)
			r.Patch("/projects/{projectID}/roadmap/items/{itemID}", s.handleCompleteRoadmapItem)

			r.Get("/resume", s.handleGetResume)
			r.Post("/resume", s.handleSaveResume)
			r.Delete("/resume", s.handleDeleteResume)
			r.Post("/resume/generate", s.handleGenerateResume)

			r.Post("/explore", s.handleCreateExplorePost)
			r.Get("/explore/{postID}", s.handleGetExplorePost)
			r.Put("/explore/{postID}", s.handleUpdateExplorePost)
			r.Delete("/explore/{postID}", s.handleDeleteExplorePost)
			r.Post("/explore/{postID}/star", s.handleStarExplorePost)

			r.Post("/ai/project-roadmap", s.handleProjectRoadmap)
			r.Post("/ai/project-ideas", s.handleProjectIdeas)
			r.Post("/ai/analyze-resume", s.handleAnalyzeResume)
			r.Post("/ai/career-recommendations", s.handleCareerRecommendations)
			r.Post("/ai/roadmap/generate", s.handleTechRoadmap)
		})
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
