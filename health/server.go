// Package health serves the liveness endpoint hosting platforms probe,
// plus Prometheus metrics, beside the long-polling bot.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
)

const aliveBody = "✅ Bot service is alive"

// Server is the sidecar HTTP listener.
type Server struct {
	srv *http.Server
}

// NewServer builds the HTTP server on listen:port.
func NewServer(listen string, port int, metrics *Metrics) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", listen, port),
			Handler:           newRouter(metrics),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func newRouter(metrics *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	alive := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(aliveBody))
	}
	r.Get("/", alive)
	r.Get("/healthz", alive)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	return r
}

// Start begins serving in the background. Listener failures are fatal to
// the health surface only, never to the bot.
func (s *Server) Start() {
	go func() {
		logger.Info(logger.Background(), "http", "http.listen",
			slog.String("listen", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(logger.Background(), "http", "http.serve.fail",
				slog.String("listen", s.srv.Addr),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
