package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"telegram-movie-bot/internal/config"
	"telegram-movie-bot/internal/domain/ports/repository"
	"telegram-movie-bot/internal/infra/metrics"
)

const banner = "🤖 Bot is running..."

// Features advertised by /status.
var Features = []string{
	"Genre-based search",
	"Trending movies",
	"Tags display",
	"Release year filter",
	"Favorites and ratings",
	"Channel reposts",
}

// Server exposes liveness, status and metrics endpoints next to the bot.
type Server struct {
	cfg     config.HTTPConfig
	catalog repository.CatalogRepository
	log     *zerolog.Logger
	server  *http.Server
}

func NewServer(cfg config.HTTPConfig, catalog repository.CatalogRepository, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "http").Logger()
	s := &Server{cfg: cfg, catalog: catalog, log: &l}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Routes builds the chi router. It is exported for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(banner))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "running",
		"health_check": "success",
	})
}

type statusResponse struct {
	Status      string   `json:"status"`
	Features    []string `json:"features"`
	CatalogSize int      `json:"catalog_size"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := s.catalog.Count(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("catalog count failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:      "running",
		Features:    Features,
		CatalogSize: n,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}
