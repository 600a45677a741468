// Package dashboard serves the listening-history dashboard: an HTML page with three
// charts and the JSON API that feeds them.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/logging"
	"github.com/ademuri/streaming-history/internal/metrics"
)

//go:embed web/index.html
var webFS embed.FS

const shutdownTimeout = 5 * time.Second

// Config tunes the HTTP surface.
type Config struct {
	// RateLimit is the sustained number of API requests per second. Zero disables
	// limiting.
	RateLimit float64
	// Burst defaults to twice the rate.
	Burst int
	Title string
}

// Server answers dashboard requests from a read-only working table.
type Server struct {
	table   *history.Table
	options Options
	limiter *rate.Limiter
	page    *template.Template
	title   string
}

func New(table *history.Table, cfg Config) (*Server, error) {
	page, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	s := &Server{
		table:   table,
		options: OptionsFor(table),
		page:    page,
		title:   cfg.Title,
	}
	if s.title == "" {
		s.title = "Your Spotify History Dashboard"
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(2 * cfg.RateLimit)
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	metrics.PlaysLoaded.Set(float64(table.Len()))
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/health", s.handleHealth)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log := logging.Logger()
		log.Info().Str("addr", addr).Int("plays", s.table.Len()).Msg("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
