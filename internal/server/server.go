package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/semantic"
	"github.com/jonathan/talent-match/internal/server/middleware"
	"github.com/jonathan/talent-match/internal/server/ratelimit"
	"github.com/jonathan/talent-match/internal/types"
)

// Store is the set of database operations the HTTP handlers need.
type Store interface {
	UserStore

	CreateJob(ctx context.Context, job *types.JobRequirement) (uuid.UUID, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*types.JobRequirement, error)
	ListJobs(ctx context.Context, limit int) ([]types.JobRequirement, error)

	CreateCandidate(ctx context.Context, candidate *types.CandidateProfile) (uuid.UUID, error)
	GetCandidate(ctx context.Context, candidateID uuid.UUID) (*types.CandidateProfile, error)
	UpdateCandidate(ctx context.Context, candidate *types.CandidateProfile) error
	ListCandidates(ctx context.Context, limit int) ([]types.CandidateProfile, error)

	CreateApplication(ctx context.Context, app *types.Application) (uuid.UUID, error)
	GetApplication(ctx context.Context, appID uuid.UUID) (*types.Application, error)
	ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, appID uuid.UUID, status types.Status) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	database    *db.DB
	scoring     *scoring.Service
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	APIKey         string
	SemanticURL    string
	SkillWeight    float64
	SemanticWeight float64
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Pick the semantic scorer: a dedicated similarity service wins over
	// Gemini; with neither configured, scores fall back to skill overlap.
	var scorer semantic.Scorer
	switch {
	case cfg.SemanticURL != "":
		scorer = semantic.NewHTTPScorer(cfg.SemanticURL, semantic.DefaultTimeout)
	case cfg.APIKey != "":
		gemini, err := semantic.NewGeminiScorer(context.Background(), cfg.APIKey, semantic.DefaultGeminiModel)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create semantic scorer: %w", err)
		}
		scorer = gemini
	default:
		log.Printf("No semantic scorer configured; match scores will use skill overlap only")
	}

	weights, err := matching.WeightsFromEnv()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("invalid match weights: %w", err)
	}
	if cfg.SkillWeight != 0 || cfg.SemanticWeight != 0 {
		weights = matching.Weights{Skill: cfg.SkillWeight, Semantic: cfg.SemanticWeight}
		if err := weights.Validate(); err != nil {
			database.Close()
			return nil, fmt.Errorf("invalid match weights: %w", err)
		}
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := newServer(database, scoring.NewService(scorer, weights),
		NewUserService(database, passwordConfig), NewJWTService(jwtConfig))
	s.database = database
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the handler dependencies. Used by New and by handler tests,
// which supply a fake store.
func newServer(store Store, scoringService *scoring.Service, userService *UserService, jwtService *JWTService) *Server {
	s := &Server{
		store:       store,
		scoring:     scoringService,
		jwtService:  jwtService,
		userService: userService,
	}
	s.authHandler = NewAuthHandler(userService, jwtService)
	return s
}

// routes builds the request multiplexer. Recruiter actions (posting jobs,
// reviewing applications, moving statuses) require a valid token with the
// recruiter role; candidate reads and applications stay open.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	authenticated := middleware.Authenticate(s.jwtService.AsTokenValidator())
	recruiterOnly := func(h http.HandlerFunc) http.Handler {
		return authenticated(middleware.RequireRole(types.RoleRecruiter)(h))
	}

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Job endpoints
	mux.Handle("POST /jobs", recruiterOnly(s.handleCreateJob))
	mux.Handle("POST /jobs/from-url", recruiterOnly(s.handleCreateJobFromURL))
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("GET /jobs/{id}/applications", recruiterOnly(s.handleListJobApplications))
	mux.HandleFunc("GET /jobs/{id}/matches", s.handleJobMatches)

	// Candidate endpoints
	mux.HandleFunc("POST /candidates", s.handleCreateCandidate)
	mux.HandleFunc("GET /candidates", s.handleListCandidates)
	mux.HandleFunc("GET /candidates/shortlist", s.handleShortlist)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("PUT /candidates/{id}", s.handleUpdateCandidate)
	mux.HandleFunc("GET /candidates/{id}/applications", s.handleListCandidateApplications)
	mux.HandleFunc("GET /candidates/{id}/matches", s.handleCandidateMatches)

	// Application endpoints
	mux.HandleFunc("POST /applications", s.handleApply)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.Handle("PATCH /applications/{id}/status", recruiterOnly(s.handleUpdateStatus))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
