package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon absorbs frame-time rounding when matching step times.
const epsilon = 1e-9

// Epoch is the simulated wall time of t=0. Event timestamps recorded by Run
// are offsets from it.
var Epoch = time.Unix(0, 0).UTC()

// FrameRecord is the hand state after one simulated frame.
type FrameRecord struct {
	Index         int               `json:"index"`
	Time          float64           `json:"time"`
	Left          domain.TargetType `json:"left"`
	Right         domain.TargetType `json:"right"`
	LeftPosition  r3.Vec            `json:"left_position"`
	RightPosition r3.Vec            `json:"right_position"`
}

// StepResult records how a step was handled.
type StepResult struct {
	Step
	Frame int `json:"frame"`
	// Forwarded is set for input steps that reached the generators.
	Forwarded bool `json:"forwarded"`
}

// Result is the outcome of a replay.
type Result struct {
	Name        string                   `json:"name"`
	Frames      []FrameRecord            `json:"frames"`
	Steps       []StepResult             `json:"steps"`
	Transitions []domain.TransitionEvent `json:"transitions"`
	Motions     []domain.MotionEvent     `json:"motions,omitempty"`
	// Failures lists the expect steps that did not hold.
	Failures []string `json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

type runConfig struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	motions *motion.Repository
}

// Option configures Run.
type Option func(*runConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks observes the replayed engine in addition to the
// recording done by Run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *runConfig) {
		c.hooks = hooks
	}
}

// WithMotionRepository lets play_motion steps reach custom clips.
func WithMotionRepository(r *motion.Repository) Option {
	return func(c *runConfig) {
		c.motions = r
	}
}

// Run replays s on a fresh engine. Steps due at or before a frame's start
// time are applied before that frame; steps at the very end are applied
// after the last frame.
func Run(ctx context.Context, s *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := &Result{Name: s.Name}
	var simTime float64
	clock := func() time.Time {
		return Epoch.Add(time.Duration(simTime * float64(time.Second)))
	}

	hooks := cfg.hooks
	hooks.OnTransition = func(e *domain.TransitionEvent) {
		res.Transitions = append(res.Transitions, *e)
		if cfg.hooks.OnTransition != nil {
			cfg.hooks.OnTransition(e)
		}
	}
	hooks.OnMotion = func(e *domain.MotionEvent) {
		res.Motions = append(res.Motions, *e)
		if cfg.hooks.OnMotion != nil {
			cfg.hooks.OnMotion(e)
		}
	}

	engOpts := []handik.Option{
		handik.WithName(s.Name),
		handik.WithLogger(cfg.logger),
		handik.WithLifecycleHooks(hooks),
		handik.WithClock(clock),
		handik.WithClips(s.Clips...),
		handik.WithWordMotions(s.Words),
		handik.WithClipSlots(s.Slots...),
	}
	if cfg.motions != nil {
		engOpts = append(engOpts, handik.WithMotionRepository(cfg.motions))
	}
	eng, err := handik.New(engOpts...)
	if err != nil {
		return nil, err
	}

	if len(s.Modes) > 0 {
		patch, err := handik.DecodeModesPatch(s.Modes)
		if err != nil {
			return nil, err
		}
		eng.PatchModes(patch)
	}

	fps := s.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	dt := 1 / float64(fps)
	frames := s.Frames()
	steps := slices.Clone(s.Steps)
	next := 0

	apply := func(frame int) error {
		for next < len(steps) && steps[next].At <= simTime+epsilon {
			st := steps[next]
			forwarded, err := applyStep(eng, st, res)
			if err != nil {
				return fmt.Errorf("step %d (%s at %gs): %w", next, st.Action, st.At, err)
			}
			res.Steps = append(res.Steps, StepResult{Step: st, Frame: frame, Forwarded: forwarded})
			next++
		}
		return nil
	}

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		simTime = float64(i) * dt
		if err := apply(i); err != nil {
			return res, err
		}

		left, right := eng.Update(dt)
		simTime = float64(i+1) * dt
		res.Frames = append(res.Frames, FrameRecord{
			Index:         i,
			Time:          simTime,
			Left:          eng.LeftTargetType(),
			Right:         eng.RightTargetType(),
			LeftPosition:  left.Position,
			RightPosition: right.Position,
		})
	}
	// Steps scheduled at the end observe the final frame.
	simTime = max(simTime, s.Duration)
	if err := apply(frames); err != nil {
		return res, err
	}

	cfg.logger.Info("scenario replayed", "scenario", s.Name, "frames", frames,
		"transitions", len(res.Transitions), "failures", len(res.Failures))
	return res, nil
}

type handArgs struct {
	Hand   string  `mapstructure:"hand"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Z      float64 `mapstructure:"z"`
	Target string  `mapstructure:"target"`
	Clip   string  `mapstructure:"clip"`
}

func applyStep(eng *handik.Engine, st Step, res *Result) (bool, error) {
	var args handArgs
	switch st.Action {
	case ActionFeed, ActionLost, ActionPlayMotion, ActionExpect:
		if err := mapstructure.WeakDecode(st.Args, &args); err != nil {
			return false, err
		}
	}

	switch st.Action {
	case ActionSetModes:
		patch, err := handik.DecodeModesPatch(st.Args)
		if err != nil {
			return false, err
		}
		eng.PatchModes(patch)
		return false, nil
	case ActionAvatarLoaded:
		eng.OnAvatarLoaded()
		return false, nil
	case ActionAvatarUnloaded:
		eng.OnAvatarUnloaded()
		return false, nil
	case ActionFeed:
		h, err := domain.ParseHand(args.Hand)
		if err != nil {
			return false, err
		}
		eng.Feed(h, domain.Pose{Position: r3.Vec{X: args.X, Y: args.Y, Z: args.Z}, Rotation: domain.IdentityRotation})
		return false, nil
	case ActionLost:
		h, err := domain.ParseHand(args.Hand)
		if err != nil {
			return false, err
		}
		eng.Lost(h)
		return false, nil
	case ActionPlayMotion:
		return eng.PlayMotion(args.Clip), nil
	case ActionExpect:
		h, err := domain.ParseHand(args.Hand)
		if err != nil {
			return false, err
		}
		want, err := domain.ParseTargetType(args.Target)
		if err != nil {
			return false, err
		}
		if got := eng.TargetType(h); got != want {
			res.Failures = append(res.Failures,
				fmt.Sprintf("at %gs: %s hand is %s, want %s", st.At, h, got, want))
		}
		return false, nil
	}

	cmd, err := handik.DecodeCommand(st.Action, st.Args)
	if err != nil {
		return false, err
	}
	return eng.Apply(cmd)
}
