package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Server bundles the HTTP server, score store and token authorizer.
type Server struct {
	cfg   *Config
	store *Store
	auth  *HMACAuthorizer
	http  *http.Server
	log   zerolog.Logger
}

// New assembles the sync service from its configuration.
func New(cfg *Config, log zerolog.Logger) (*Server, error) {
	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	auth := NewHMACAuthorizer(cfg.AuthSecret)
	router := NewRouter(NewHandler(store, log), auth)

	return &Server{
		cfg:   cfg,
		store: store,
		auth:  auth,
		http:  &http.Server{Addr: cfg.HTTPAddr(), Handler: router},
		log:   log,
	}, nil
}

// Authorizer exposes the token authorizer, for minting tokens out of band.
func (s *Server) Authorizer() *HMACAuthorizer {
	return s.auth
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// closes the store.
func (s *Server) Run(ctx context.Context) error {
	defer s.store.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", s.cfg.HTTPAddr()).Msg("starting sync service")
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info().Msg("shutting down sync service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
