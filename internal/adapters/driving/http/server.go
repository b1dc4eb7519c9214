// Package http exposes the platform over a JSON REST API.
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/domain"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService      driving.AuthService
	retrievalService driving.RetrievalService
	catalogService   driving.CatalogService
	assistantService driving.AssistantService

	// Infrastructure
	rateLimiter    driven.RateLimiter
	rateWindow     time.Duration
	rateMax        int
	paymentSecret  string
	db             Pinger // PostgreSQL health check (optional)
	redisClient    Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host          string
	Port          int
	Version       string
	RateWindow    time.Duration
	RateMax       int
	PaymentSecret string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:       "0.0.0.0",
		Port:       8080,
		Version:    "dev",
		RateWindow: time.Minute,
		RateMax:    60,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	retrievalService driving.RetrievalService,
	catalogService driving.CatalogService,
	assistantService driving.AssistantService,
	rateLimiter driven.RateLimiter,
	db Pinger, // can be nil
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authService:      authService,
		retrievalService: retrievalService,
		catalogService:   catalogService,
		assistantService: assistantService,
		rateLimiter:      rateLimiter,
		rateWindow:       cfg.RateWindow,
		rateMax:          cfg.RateMax,
		paymentSecret:    cfg.PaymentSecret,
		db:               db,
		redisClient:      redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	rateMiddleware := NewRateLimitMiddleware(s.rateLimiter, s.rateWindow, s.rateMax)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.Handle("POST /api/v1/auth/register",
		rateMiddleware.Handler(http.HandlerFunc(s.handleRegister)))
	s.router.Handle("POST /api/v1/auth/login",
		rateMiddleware.Handler(http.HandlerFunc(s.handleLogin)))

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Retrieval endpoints. Search and context are public but rate limited;
	// ingestion is restricted to content roles.
	s.router.Handle("GET /api/v1/rag/search",
		rateMiddleware.Handler(http.HandlerFunc(s.handleRAGSearch)))
	s.router.Handle("GET /api/v1/rag/context",
		rateMiddleware.Handler(http.HandlerFunc(s.handleRAGContext)))
	s.router.Handle("POST /api/v1/rag/documents",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleContentManager)(
				http.HandlerFunc(s.handleRAGIngest))))
	s.router.Handle("POST /api/v1/rag/documents/batch",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleContentManager)(
				http.HandlerFunc(s.handleRAGIngestBatch))))
	s.router.Handle("POST /api/v1/rag/index/attractions",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleContentManager)(
				http.HandlerFunc(s.handleRAGIndexAttractions))))

	// Catalog endpoints
	s.router.Handle("GET /api/v1/attractions",
		rateMiddleware.Handler(http.HandlerFunc(s.handleListAttractions)))
	s.router.Handle("POST /api/v1/attractions",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleContentManager)(
				http.HandlerFunc(s.handleCreateAttraction))))
	s.router.Handle("POST /api/v1/attractions/{id}/reviews",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateReview)))

	// Booking endpoints (authenticated)
	s.router.Handle("POST /api/v1/bookings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateBooking)))
	s.router.Handle("GET /api/v1/bookings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListBookings)))
	s.router.Handle("PATCH /api/v1/bookings/{id}/status",
		authMiddleware.Authenticate(
			authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleModerator)(
				http.HandlerFunc(s.handleUpdateBookingStatus))))

	// Assistant endpoint (public, rate limited)
	s.router.Handle("POST /api/v1/ai/ask",
		rateMiddleware.Handler(http.HandlerFunc(s.handleAssistantAsk)))

	// Payment provider webhook (signature verified, never authenticated)
	s.router.HandleFunc("POST /api/v1/payments/webhook", s.handlePaymentWebhook)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
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

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
