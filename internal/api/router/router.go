package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carecompass/platform/internal/http/handlers"
	httpmiddleware "github.com/carecompass/platform/internal/http/middleware"
	"github.com/carecompass/platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	AssistantHandler   *handlers.AssistantHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.AssistantHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/sessions", func(s chi.Router) {
			s.Post("/", cfg.AssistantHandler.CreateSession)
			s.Route("/{sessionID}", func(sess chi.Router) {
				sess.Get("/", cfg.AssistantHandler.GetSession)
				sess.Post("/navigate", cfg.AssistantHandler.Navigate)
				sess.Route("/modules/{module}", func(m chi.Router) {
					m.Post("/analyze", cfg.AssistantHandler.Analyze)
					m.Get("/export", cfg.AssistantHandler.Export)
				})
			})
		})
		api.Get("/modules/{module}/sample", cfg.AssistantHandler.Sample)
	})

	return r
}
