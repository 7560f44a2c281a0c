package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/handik"
	httpAdapter "github.com/aretw0/handik/pkg/adapters/http"
	"github.com/aretw0/handik/pkg/config"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/aretw0/handik/pkg/observability"
	"github.com/aretw0/handik/pkg/ports"
	"github.com/aretw0/handik/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Services is the wired application behind serve and mcp.
type Services struct {
	Config   *config.Config
	Logger   *slog.Logger
	Engine   *handik.Engine
	Runner   *runner.Runner
	Store    ports.SnapshotStore
	Motions  *motion.Repository
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Streams  *httpAdapter.StreamManager

	closers []func() error
}

// Build wires an engine, its runner and its snapshot store from cfg. The
// snapshot of cfg.Profile is restored when the store has one.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	s := &Services{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
		Streams:  httpAdapter.NewStreamManager(logger),
	}
	s.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := observability.NewMetrics(s.Registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	s.Metrics = metrics

	hooks := observability.Chain(metrics.Hooks(), s.Streams.Hooks(), observability.AuditLog(logger))
	if s.Motions, err = openMotions(cfg.Motions, logger); err != nil {
		return nil, err
	}
	s.Engine, err = NewEngine(cfg, logger, hooks, s.Motions)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	s.Store = store
	if closeStore != nil {
		s.closers = append(s.closers, closeStore)
	}

	snap, err := store.Load(ctx, cfg.Profile)
	switch {
	case err == nil:
		s.Engine.RestoreModes(snap)
		logger.Info("snapshot restored", "profile", cfg.Profile, "saved_at", snap.SavedAt)
	case !errors.Is(err, domain.ErrSnapshotNotFound):
		s.Close()
		return nil, fmt.Errorf("load snapshot %q: %w", cfg.Profile, err)
	}

	s.Runner = runner.New(s.Engine,
		runner.WithLogger(logger),
		runner.WithFPS(cfg.FPS),
		runner.WithFrameHook(func(f runner.FrameSnapshot) { metrics.ObserveFrame(f.Dt) }),
	)
	return s, nil
}

// NewEngine builds an engine from the modes and motion settings of cfg.
// motions may be nil.
func NewEngine(cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks, motions *motion.Repository) (*handik.Engine, error) {
	opts := []handik.Option{
		handik.WithLogger(logger),
		handik.WithLifecycleHooks(hooks),
		handik.WithModes(cfg.Modes.Modes()),
		handik.WithClips(cfg.Motions.Clips...),
		handik.WithName(cfg.Profile),
	}
	if len(cfg.Motions.Words) > 0 {
		opts = append(opts, handik.WithWordMotions(cfg.Motions.Words))
	}
	if len(cfg.Motions.Slots) > 0 {
		opts = append(opts, handik.WithClipSlots(cfg.Motions.Slots...))
	}
	if motions != nil {
		opts = append(opts, handik.WithMotionRepository(motions))
	}

	eng, err := handik.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	eng.SetYOffsetAlways(cfg.YOffset)
	return eng, nil
}

func openMotions(cfg config.MotionsConfig, logger *slog.Logger) (*motion.Repository, error) {
	if cfg.Dir == "" {
		return nil, nil
	}
	repo := motion.NewRepository(cfg.Dir, motion.WithRepositoryLogger(logger))
	if err := repo.Load(); err != nil {
		return nil, fmt.Errorf("load motions: %w", err)
	}
	return repo, nil
}

// ApplyConfig pushes the hot-reloadable settings of cfg to the running engine.
func (s *Services) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	return s.Runner.Submit(ctx, func(e *handik.Engine) {
		e.ApplyModes(cfg.Modes.Modes())
		e.SetYOffsetAlways(cfg.YOffset)
	})
}

// SaveProfile stores the current modes under the configured profile.
func (s *Services) SaveProfile(ctx context.Context) error {
	var snap domain.Snapshot
	if err := s.Runner.Submit(ctx, func(e *handik.Engine) {
		snap = e.Snapshot(s.Config.Profile)
	}); err != nil {
		// The loop is stopping. Read the engine once its last frame is done.
		if werr := s.Runner.Wait(ctx); werr != nil {
			return fmt.Errorf("wait for frame loop: %w", werr)
		}
		snap = s.Engine.Snapshot(s.Config.Profile)
	}
	return s.Store.Save(ctx, snap)
}

// Close releases the store.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
