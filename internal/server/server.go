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

	"github.com/ananya/ideahub/internal/analysis"
	"github.com/ananya/ideahub/internal/config"
	"github.com/ananya/ideahub/internal/db"
	"github.com/ananya/ideahub/internal/server/middleware"
	"github.com/ananya/ideahub/internal/server/ratelimit"
	"github.com/ananya/ideahub/internal/storage"
	"github.com/ananya/ideahub/internal/translate"
	"github.com/ananya/ideahub/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       *storage.Store
	analyzer    *analysis.Analyzer
	translator  *translate.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	APIKey       string
	UploadDir    string
	TranslateURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, err
	}

	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	s := &Server{
		db:    database,
		store: store,
	}

	// The analyzer is optional; without an API key submissions simply stay
	// unassessed until the CLI runs them.
	if cfg.APIKey != "" {
		analyzer, err := analysis.New(context.Background(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create analyzer: %w", err)
		}
		s.analyzer = analyzer
	}

	if cfg.TranslateURL != "" {
		s.translator = translate.NewClient(cfg.TranslateURL, nil)
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for analyzer-backed routes
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the API router. Each role group runs behind the JWT
// middleware plus a role check; login and register are public.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	authn := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	admin := func(h http.HandlerFunc) http.Handler {
		return authn(middleware.RequireRole(types.RoleAdmin)(h))
	}
	mentor := func(h http.HandlerFunc) http.Handler {
		return authn(middleware.RequireRole(types.RoleMentor, types.RoleAdmin)(h))
	}
	student := func(h http.HandlerFunc) http.Handler {
		return authn(middleware.RequireRole(types.RoleStudent, types.RoleMentor, types.RoleAdmin)(h))
	}

	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("PUT /api/auth/password", authn(http.HandlerFunc(s.handleUpdatePassword)))

	// Admin endpoints
	mux.Handle("GET /api/admin/students", admin(s.handleAdminStudents))
	mux.Handle("GET /api/admin/mentors", admin(s.handleAdminMentors))
	mux.Handle("GET /api/admin/mentor-assignments", admin(s.handleAdminAssignments))
	mux.Handle("POST /api/admin/assign-mentor", admin(s.handleAssignMentor))
	mux.Handle("GET /api/admin/potential-ideas", admin(s.handlePotentialIdeas))
	mux.Handle("GET /api/admin/overview", admin(s.handleAdminOverview))

	// Student endpoints
	mux.Handle("GET /api/student/{studentId}", student(s.handleStudentDetails))
	mux.Handle("POST /api/student/create", student(s.handleStudentCreate))
	mux.Handle("GET /api/student/project/{projectId}", student(s.handleStudentProject))
	mux.Handle("GET /api/student/feedback/{projectId}", student(s.handleStudentFeedback))
	mux.Handle("GET /api/student/transcript/{projectId}", student(s.handleStudentTranscript))

	// Mentor endpoints
	mux.Handle("GET /api/mentor/{mentorId}/students", mentor(s.handleMentorStudents))
	mux.Handle("GET /api/mentor/project/{projectId}", mentor(s.handleMentorProject))
	mux.Handle("GET /api/mentor/analysis/{projectId}", mentor(s.handleMentorAnalysis))
	mux.Handle("GET /api/mentor/comments/{projectId}", mentor(s.handleMentorComments))
	mux.Handle("POST /api/mentor/comments/{projectId}", mentor(s.handleMentorAddComment))
	mux.Handle("PUT /api/mentor/remarks/{projectId}", mentor(s.handleMentorRemarks))

	mux.HandleFunc("GET /api/health", s.handleHealth)

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

	if s.analyzer != nil {
		_ = s.analyzer.Close()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
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
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
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

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
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

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
