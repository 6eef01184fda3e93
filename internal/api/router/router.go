// Package router assembles the HTTP surface: chat endpoints, the websocket
// widget, health, and metrics.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harborview-health/scheduler-agent/internal/engine"
	httpmiddleware "github.com/harborview-health/scheduler-agent/internal/http/middleware"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *engine.Handler
	WebchatHandler     http.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// ChatRatePerSecond limits chat turns per client IP; zero disables the
	// limiter.
	ChatRatePerSecond float64
	ChatRateBurst     int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

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

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ChatHandler != nil {
		r.Route("/chat", func(chat chi.Router) {
			if cfg.ChatRatePerSecond > 0 {
				chat.Use(httpmiddleware.RateLimit(cfg.ChatRatePerSecond, cfg.ChatRateBurst))
			}
			chat.Post("/start", cfg.ChatHandler.Start)
			chat.Post("/{sessionID}", cfg.ChatHandler.Message)
			chat.Post("/{sessionID}/reset", cfg.ChatHandler.Reset)
			chat.Get("/{sessionID}", cfg.ChatHandler.Snapshot)
		})
	}

	if cfg.WebchatHandler != nil {
		r.Handle("/ws/chat", cfg.WebchatHandler)
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
