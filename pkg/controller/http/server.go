package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

// config holds internal HTTP server configuration
type config struct {
	addr   string
	apiKey string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAPIKey sets the API key required on hook and event routes
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server. Publish and event routes sit
// behind the API-key check; health and metrics do not.
func NewServer(
	ctx context.Context,
	agendaUC interfaces.AgendaUseCase,
	adrUC interfaces.ADRUseCase,
	scorecardUC interfaces.ScorecardUseCase,
	eventUC interfaces.EventUseCase,
	m *metrics.Metrics,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	publish := NewPublishHandler(agendaUC, adrUC, scorecardUC)
	events := NewEventHandler(eventUC)

	router.Group(func(r chi.Router) {
		r.Use(APIKeyMiddleware(cfg.apiKey))

		r.Post("/hooks/publish/agenda", publish.HandleAgenda)
		r.Post("/hooks/publish/adr", publish.HandleADR)
		r.Post("/hooks/publish/scorecard", publish.HandleScorecard)
		r.Post("/events/{source}", events.Handle)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
