package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	minWriteTimeout        = 15 * time.Second
	writeSlack             = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Server runs the HTTP listener and drains it on shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer listens on cfg.Port. The write timeout stays ahead of the
// per-request timeout so a timed-out handler can still answer 504.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	writeTimeout := max(cfg.RequestTimeout+writeSlack, minWriteTimeout)
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: shutdown,
	}
}

// Run serves until ctx is done or the listener fails. In both cases in-flight
// requests get the shutdown timeout to finish; a listen error is returned.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			log.Info().Msg("Shutdown requested, draining connections")
		}
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Dur("timeout", s.shutdownTimeout).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server stopped gracefully")
	return nil
}
