package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/handik/pkg/adapters/http"
	"github.com/aretw0/handik/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the HTTP handler for s.
func (s *Services) Handler() http.Handler {
	return httpAdapter.NewHandler(s.Runner,
		httpAdapter.WithStore(s.Store),
		httpAdapter.WithStreams(s.Streams),
		httpAdapter.WithMetrics(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(s.Logger),
	)
}

// StartLoop runs the frame loop and the file watchers until ctx is done.
// configPath may be empty. The returned channel yields the loop's result.
func (s *Services) StartLoop(ctx context.Context, configPath string) (<-chan error, error) {
	if configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			return nil, err
		}
		w.OnChange(func(cfg *config.Config) {
			if err := s.ApplyConfig(ctx, cfg); err != nil {
				s.Logger.Warn("apply reloaded config", "error", err)
				return
			}
			s.Logger.Info("config reloaded", "path", configPath)
		})
		if err := w.Watch(ctx); err != nil {
			return nil, err
		}
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err := <-w.Errors():
					s.Logger.Warn("config watcher", "error", err)
				}
			}
		}()
	}

	if s.Motions != nil {
		if err := s.Motions.Watch(ctx, nil); err != nil {
			return nil, err
		}
	}

	done := make(chan error, 1)
	go func() { done <- s.Runner.Run(ctx) }()
	return done, nil
}

// Serve runs the HTTP server and the frame loop until ctx is done, then
// saves the profile snapshot.
func Serve(ctx context.Context, s *Services, configPath string) error {
	loop, err := s.StartLoop(ctx, configPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.Config.HTTP.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.Logger.Info("HTTP server listening", "address", srv.Addr, "profile", s.Config.Profile)
		serverErrors <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case err := <-loop:
		runErr = err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.Logger.Warn("graceful shutdown did not complete", "error", err)
		srv.Close()
	}
	s.Runner.Stop()

	if err := s.SaveProfile(shutdownCtx); err != nil {
		s.Logger.Error("save snapshot", "profile", s.Config.Profile, "error", err)
	} else {
		s.Logger.Info("snapshot saved", "profile", s.Config.Profile)
	}
	return runErr
}
