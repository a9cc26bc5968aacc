package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the automaton runner served over HTTP.
type Engine interface {
	ports.Stepper
	Name() string
}

// Server holds the engine and the computations it serves.
// The engine can be swapped at runtime with Reload.
type Server struct {
	mu       sync.RWMutex
	engine   Engine
	sessions *session.Manager

	Streams *StreamManager

	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	rateLimit   int
	rateWindow  time.Duration
	corsEnabled bool
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRateLimit limits every client IP to n requests per window. n <= 0 disables it.
func WithRateLimit(n int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = n
		s.rateWindow = window
	}
}

// WithCORS allows cross-origin requests from any origin.
func WithCORS() Option {
	return func(s *Server) {
		s.corsEnabled = true
	}
}

// NewServer creates a server for engine. Computations are kept in sessions.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// Reload swaps the automaton being served and notifies /events subscribers.
// The session manager is kept, so per-computation locks survive the swap;
// stored computations are read against the new automaton.
func (s *Server) Reload(engine Engine) {
	s.mu.Lock()
	s.engine = engine
	s.sessions.SetEngine(engine)
	s.mu.Unlock()

	s.logger.Info("automaton reloaded", "automaton", engine.Name())
	s.Streams.Broadcast(globalTopic, "reload")
}

func (s *Server) current() (Engine, *session.Manager) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.sessions
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if s.corsEnabled {
		r.Use(enableCORS)
	}

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/events", s.SubscribeEvents)

	r.Group(func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(rateLimit(s.rateLimit, s.rateWindow))
		}

		r.Get("/automaton", s.GetAutomaton)
		r.Post("/accept", s.Accept)
		r.Post("/trace", s.Trace)
		r.Post("/step", s.Step)

		r.Route("/computations", func(r chi.Router) {
			r.Post("/", s.StartComputation)
			r.Get("/", s.ListComputations)
			r.Get("/{id}", s.GetComputation)
			r.Delete("/{id}", s.DeleteComputation)
			r.Post("/{id}/feed", s.FeedComputation)
			r.Get("/{id}/verdict", s.GetVerdict)
			r.Get("/{id}/events", s.SubscribeComputation)
		})
	})

	return r
}

// NewHandler is a shortcut for NewServer(engine, sessions, opts...).Handler().
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Handler()
}
