package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/veylan/ForgeLedger_Go/internal/database"
	"github.com/veylan/ForgeLedger_Go/internal/equipment"
	"github.com/veylan/ForgeLedger_Go/internal/handler"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/metrics"
	"github.com/veylan/ForgeLedger_Go/internal/prices"
	"github.com/veylan/ForgeLedger_Go/internal/session"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	sessionService session.Service
	priceClient    *prices.Client
	recipeRegistry *equipment.Registry
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, sessionService session.Service, priceClient *prices.Client, recipeRegistry *equipment.Registry) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRequestRateLimiter()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Calculator routes
		calcHandler := handler.NewCalcHandler(recipeRegistry)
		r.Route("/calc", func(r chi.Router) {
			r.Post("/refining", calcHandler.Refining)
			r.Post("/resources", calcHandler.Resources)
			r.Post("/equipment", calcHandler.Equipment)
			r.Post("/multitier", calcHandler.MultiTier)
		})

		// Saved session routes
		sessionHandler := handler.NewSessionHandler(sessionService)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.HandleSave)
			r.Get("/", sessionHandler.HandleList)
			r.Get("/search", sessionHandler.HandleSearch)
			r.Get("/{id}", sessionHandler.HandleGet)
			r.Put("/{id}", sessionHandler.HandleUpdate)
			r.Delete("/{id}", sessionHandler.HandleDelete)
		})

		// Market price routes
		r.Get("/prices", handler.HandleGetPrices(priceClient))

		// Equipment recipe catalog
		r.Get("/equipment/recipes", handler.HandleGetRecipes(recipeRegistry))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		sessionService: sessionService,
		priceClient:    priceClient,
		recipeRegistry: recipeRegistry,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
