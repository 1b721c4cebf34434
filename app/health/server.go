package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/m3rciful/filebot/core/buildinfo"
	"github.com/m3rciful/filebot/core/logger"
	"log/slog"
)

// Pinger reports backing store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes a minimal HTTP surface for liveness probes.
type Server struct {
	addr string
	db   Pinger
	srv  *http.Server
}

// NewServer builds the health server. Addr may be empty to disable it.
func NewServer(addr string, db Pinger) *Server {
	return &Server{addr: addr, db: db}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		}
		if s.db != nil {
			if err := s.db.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["db"] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})

	return r
}

// Start runs the server until the context is cancelled. A no-op when
// the listen address is empty.
func (s *Server) Start(ctx context.Context) {
	if s.addr == "" {
		return
	}

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.HTTP.Info("health server listening",
			slog.String("event", "http.listen"),
			slog.String("addr", s.addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.HTTP.Error("health server failed",
				slog.String("event", "http.fail"),
				slog.String("err", err.Error()),
			)
		}
	}()

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutCtx)
	}()
}
