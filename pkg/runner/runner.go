package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
)

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("runner already running")

// FrameSnapshot is the engine state published after a frame.
type FrameSnapshot struct {
	Frame uint64       `json:"frame"`
	Time  time.Time    `json:"time"`
	Dt    float64      `json:"dt"`
	State handik.State `json:"state"`
}

type command struct {
	fn   func(*handik.Engine)
	done chan struct{}
}

// Runner owns an Engine and runs its frames.
type Runner struct {
	engine *handik.Engine
	logger *slog.Logger
	now    func() time.Time

	interval  time.Duration
	maxDelta  time.Duration
	inboxSize int
	onFrame   func(FrameSnapshot)

	inbox    chan command
	stopped  chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	exited   chan struct{}

	frame    uint64
	snapshot atomic.Pointer[FrameSnapshot]
}

// New creates a runner for engine. The engine must not be used directly
// once the runner is running.
func New(engine *handik.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		logger:    logging.NewNop(),
		now:       time.Now,
		interval:  time.Second / DefaultFPS,
		maxDelta:  DefaultMaxDelta,
		inboxSize: DefaultInboxSize,
		stopped:   make(chan struct{}),
		exited:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.inbox = make(chan command, r.inboxSize)
	r.publish(0)
	return r
}

// Run ticks the engine until ctx is done. It returns nil on cancellation.
// Commands still waiting when it returns fail with domain.ErrRunnerStopped.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(r.exited)
	defer r.Stop()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("frame loop started", "interval", r.interval)
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("frame loop stopped", "frames", r.frame)
			return nil
		case <-r.stopped:
			return nil
		case <-ticker.C:
			now := r.now()
			dt := now.Sub(last)
			last = now
			if dt > r.maxDelta {
				dt = r.maxDelta
			}
			r.Step(dt.Seconds())
		}
	}
}

// Step runs the queued commands and one engine frame. Hosts that own their
// frame timing call it instead of Run; the two must not be mixed.
func (r *Runner) Step(dt float64) {
	r.drain()
	r.engine.Update(dt)
	r.frame++
	snap := r.publish(dt)
	if r.onFrame != nil {
		r.onFrame(snap)
	}
}

func (r *Runner) drain() {
	for {
		select {
		case cmd := <-r.inbox:
			cmd.fn(r.engine)
			close(cmd.done)
		default:
			return
		}
	}
}

func (r *Runner) publish(dt float64) FrameSnapshot {
	snap := FrameSnapshot{
		Frame: r.frame,
		Time:  r.now(),
		Dt:    dt,
		State: r.engine.State(),
	}
	r.snapshot.Store(&snap)
	return snap
}

// Submit runs fn on the frame loop before the next frame and waits for it.
func (r *Runner) Submit(ctx context.Context, fn func(*handik.Engine)) error {
	cmd := command{fn: fn, done: make(chan struct{})}

	select {
	case <-r.stopped:
		return domain.ErrRunnerStopped
	default:
	}

	select {
	case r.inbox <- cmd:
	case <-r.stopped:
		return domain.ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-cmd.done:
		return nil
	case <-r.stopped:
		return domain.ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the state published after the last frame.
func (r *Runner) Snapshot() FrameSnapshot {
	return *r.snapshot.Load()
}

// Stop ends Run and rejects further commands. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopped) })
}

// Wait blocks until Run has returned, so the engine may be read directly
// again. It returns at once when Run was never started.
func (r *Runner) Wait(ctx context.Context) error {
	if !r.running.Load() {
		return nil
	}
	select {
	case <-r.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the runner has stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.stopped
}
