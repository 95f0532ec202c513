package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/blobyeu/statuspage/internal/config"
	"github.com/blobyeu/statuspage/internal/status"
	"github.com/blobyeu/statuspage/internal/vpncheck"
)

// NewRouter creates a new HTTP router
func NewRouter(cfg *config.Config, db *gorm.DB, assembler *status.Assembler, checker *vpncheck.Checker, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(middleware.Compress(5))
	r.Use(SecurityHeadersMiddleware(cfg))

	limiter := NewRateLimiter(rate.Limit(10), 20)
	limiter.StartCleanup()

	// API routes
	r.Route("/api", func(r chi.Router) {
		// The status page is public: every origin may read it, and the
		// preflight response carries no body.
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(RateLimitMiddleware(limiter))

		r.Get("/status", HandleGetStatus(assembler))
		r.Get("/status/summary", HandleGetStatusSummary(assembler))

		r.Get("/vpn-check", HandleVPNCheck(checker, log))

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/", HandleListMaintenance(db))
			r.Post("/", HandleCreateMaintenance(db))
			r.Delete("/{id}", HandleDeleteMaintenance(db))
		})
	})

	// Prometheus metrics endpoint (no auth required)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
