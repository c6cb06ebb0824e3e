// Package server exposes the app's HTTP endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/shopify"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ShutdownTimeout bounds how long in-flight requests may finish after the
// server is asked to stop.
const ShutdownTimeout = 10 * time.Second

// WebhookHandler processes verified webhooks.
type WebhookHandler interface {
	HandleWebhook(ctx context.Context, wh *shopify.Webhook) error
}

// Pinger checks a dependency's health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds what the server needs.
type Config struct {
	Addr          string
	WebhookSecret string
	Webhooks      WebhookHandler
	DB            Pinger // optional
	Logger        shopkit.Logger

	// AbortDelay bounds each request; zero means shopkit.DefaultAbortDelay.
	AbortDelay time.Duration
}

// Server serves the health check and the webhook endpoint.
type Server struct {
	cfg     Config
	handler http.Handler
}

// New creates a Server and builds its routes.
func New(cfg Config) *Server {
	if cfg.AbortDelay <= 0 {
		cfg.AbortDelay = shopkit.DefaultAbortDelay
	}
	s := &Server{cfg: cfg}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Post("/webhooks", s.handleWebhook)

	return http.TimeoutHandler(r, s.cfg.AbortDelay, "request timed out")
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.cfg.Logger.Info("Listening on http://%s", ln.Addr())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.cfg.Logger.Verbose("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DB != nil {
		if err := s.cfg.DB.Ping(r.Context()); err != nil {
			s.cfg.Logger.Warn("Health check failed: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	wh, err := shopify.ParseWebhook(r, s.cfg.WebhookSecret)
	if errors.Is(err, shopkit.ErrWebhookUnauthorized) {
		s.cfg.Logger.Warn("Rejected webhook from %s: %v", r.RemoteAddr, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A non-2xx answer makes Shopify redeliver the webhook later.
	if err := s.cfg.Webhooks.HandleWebhook(r.Context(), wh); err != nil {
		s.cfg.Logger.Error("Webhook %s for %s failed: %v", wh.Topic, wh.Shop, err)
		http.Error(w, "webhook processing failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Verbose("%s %s %d %v [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
