package handik

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/internal/runtime"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/generators"
	"github.com/aretw0/handik/pkg/input"
	"github.com/aretw0/handik/pkg/motion"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Version is the library version reported by the CLI and transports.
const Version = "0.3.0"

// Engine is the high-level entry point for the handik library.
// It wires the integrator to the reference generators and the motion player.
//
// Engine is not safe for concurrent use. Hosts that feed it from several
// goroutines go through pkg/runner.
type Engine struct {
	runtime *runtime.Integrator
	gens    *generators.Set
	player  *motion.Player
	motions *motion.Repository
	mapper  *motion.Mapper

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time

	runtimeOpts []runtime.Option
	clips       []motion.Clip
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTargetSink receives both hand IK targets at the end of every frame.
func WithTargetSink(sink domain.TargetSink) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithTargetSink(sink))
	}
}

// WithModes overrides the startup modes.
func WithModes(m domain.Modes) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithModes(m))
	}
}

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
			e.runtimeOpts = append(e.runtimeOpts, runtime.WithClock(now))
		}
	}
}

// WithClips registers the built-in motion clips.
func WithClips(clips ...motion.Clip) Option {
	return func(e *Engine) {
		e.clips = append(e.clips, clips...)
	}
}

// WithMotionRepository plays custom clips that are not built in.
func WithMotionRepository(r *motion.Repository) Option {
	return func(e *Engine) {
		e.motions = r
	}
}

// WithWordMotions maps typed words to clips for the keyboard word mode.
func WithWordMotions(words map[string]string) Option {
	return func(e *Engine) {
		e.mapper.Words = words
	}
}

// WithClipSlots orders the clips selected by number keys, gamepad buttons
// and MIDI notes.
func WithClipSlots(slots ...string) Option {
	return func(e *Engine) {
		e.mapper.Clips = slots
	}
}

// WithName labels the engine in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New builds an engine with every reference generator registered. Both hands
// start on the typing generator.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		mapper: &motion.Mapper{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("engine", eng.Name)
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.New(runtimeOpts...)

	eng.gens = generators.NewSet(generators.Dependency{
		Requests: eng.runtime.Requests(),
		Runtime:  eng.runtime,
		Events:   eng.runtime.Events(),
	})
	if err := eng.runtime.Register(eng.gens.All()...); err != nil {
		return nil, fmt.Errorf("register generators: %w", err)
	}
	if err := eng.runtime.Start(eng.gens.Typing); err != nil {
		return nil, fmt.Errorf("start integrator: %w", err)
	}

	eng.player = motion.NewPlayer(eng.clips)
	return eng, nil
}

// Update runs one frame and returns the committed left and right IK targets.
func (e *Engine) Update(dt float64) (left, right domain.Pose) {
	left, right = e.runtime.Update(dt)
	e.player.Tick(dt)
	if e.motions != nil {
		e.motions.Tick(dt)
	}
	return left, right
}

// OnAvatarLoaded resets idle timeouts, snaps both hands to the image-tracking
// pose and starts the default clip.
func (e *Engine) OnAvatarLoaded() {
	e.runtime.OnAvatarLoaded()
	e.player.OnAvatarLoaded()
}

// OnAvatarUnloaded stops motion playback.
func (e *Engine) OnAvatarUnloaded() {
	e.runtime.OnAvatarUnloaded()
	e.player.OnAvatarUnloaded()
	if e.motions != nil {
		e.motions.StopAll()
	}
}

func (e *Engine) AvatarLoaded() bool { return e.runtime.AvatarLoaded() }

// Input

func (e *Engine) KeyDown(key string) bool {
	switch assign := e.runtime.Modes().WordToMotionDevice; assign {
	case domain.WordToMotionKeyboardWord, domain.WordToMotionKeyboardNumber:
		if clip, ok := e.mapper.Key(assign, key); ok {
			e.playMotion(clip, "keyboard")
		}
	}
	return e.runtime.KeyDown(key)
}

func (e *Engine) KeyUp(key string) bool { return e.runtime.KeyUp(key) }
func (e *Engine) MoveMouse(pos r3.Vec) bool { return e.runtime.MoveMouse(pos) }
func (e *Engine) OnMouseButton(b string) bool { return e.runtime.OnMouseButton(b) }
func (e *Engine) MoveLeftStick(v r2.Vec) bool { return e.runtime.MoveLeftGamepadStick(v) }
func (e *Engine) MoveRightStick(v r2.Vec) bool { return e.runtime.MoveRightGamepadStick(v) }

func (e *Engine) GamepadButtonDown(key input.GamepadKey) bool {
	if clip, ok := e.mapper.Button(e.runtime.Modes().WordToMotionDevice, key); ok {
		e.playMotion(clip, "gamepad")
	}
	return e.runtime.GamepadButtonDown(key)
}

func (e *Engine) GamepadButtonUp(key input.GamepadKey) bool {
	return e.runtime.GamepadButtonUp(key)
}

func (e *Engine) ButtonStick(pos input.StickPosition) bool {
	return e.runtime.ButtonStick(pos)
}

func (e *Engine) KnobValueChange(knob int, value float64) bool {
	return e.runtime.KnobValueChange(knob, value)
}

func (e *Engine) NoteOn(note int) bool {
	if clip, ok := e.mapper.Note(e.runtime.Modes().WordToMotionDevice, note); ok {
		e.playMotion(clip, "midi")
	}
	return e.runtime.NoteOn(note)
}

// Feed hands a fresh image-tracking sample to the tracker. The hand switches
// to image tracking on the next frame.
func (e *Engine) Feed(h domain.Hand, pose domain.Pose) { e.gens.ImageBase.Feed(h, pose) }

// Lost marks image tracking of a hand as lost.
func (e *Engine) Lost(h domain.Hand) { e.gens.ImageBase.Lost(h) }

// Motion

// PlayMotion starts a built-in clip, or a custom clip from the motion
// repository. It reports whether anything was played.
func (e *Engine) PlayMotion(name string) bool {
	return e.playMotion(name, "api")
}

func (e *Engine) playMotion(name, source string) bool {
	played := false
	if e.player.CanPlay(name) {
		// The player ignores clips until an avatar is loaded.
		played = e.runtime.AvatarLoaded()
		e.player.Play(name)
	} else if e.motions != nil {
		played = e.motions.Run(name, false)
	}
	if !played {
		return false
	}

	e.logger.Info("motion played", "clip", name, "source", source)
	if e.hooks.OnMotion != nil {
		e.hooks.OnMotion(&domain.MotionEvent{Timestamp: e.now(), Clip: name, Source: source})
	}
	return true
}

// StopMotion fades the built-in player back to the default clip and stops
// custom clips.
func (e *Engine) StopMotion() {
	e.player.Abort()
	e.player.StopPreview()
	if e.motions != nil {
		e.motions.StopAll()
	}
}

func (e *Engine) PlayPreview(name string) { e.player.PlayPreview(name) }
func (e *Engine) StopPreview() { e.player.StopPreview() }
func (e *Engine) Player() *motion.Player { return e.player }

// Modes

func (e *Engine) Modes() domain.Modes { return e.runtime.Modes() }

func (e *Engine) SetKeyboardAndMouseMotionMode(i int) bool {
	return e.runtime.SetKeyboardAndMouseMotionMode(i)
}

func (e *Engine) SetGamepadMotionMode(i int) bool { return e.runtime.SetGamepadMotionMode(i) }
func (e *Engine) SetWordToMotionDevice(i int) bool { return e.runtime.SetWordToMotionDevice(i) }
func (e *Engine) SetAlwaysHandDown(v bool) bool { return e.runtime.SetAlwaysHandDown(v) }
func (e *Engine) SetHandDownTimeout(v bool) bool { return e.runtime.SetHandDownTimeout(v) }
func (e *Engine) ApplyModes(m domain.Modes) bool { return e.runtime.ApplyModes(m) }
func (e *Engine) SetYOffsetAlways(offset float64) { e.runtime.SetYOffsetAlways(offset) }
func (e *Engine) YOffsetAlways() float64 { return e.runtime.YOffsetAlways() }

// Queries

func (e *Engine) TargetType(h domain.Hand) domain.TargetType { return e.runtime.TargetType(h) }
func (e *Engine) LeftTargetType() domain.TargetType { return e.runtime.LeftTargetType() }
func (e *Engine) RightTargetType() domain.TargetType { return e.runtime.RightTargetType() }
func (e *Engine) IsLeftHandGripGamepad() bool { return e.runtime.IsLeftHandGripGamepad() }
func (e *Engine) IsRightHandGripGamepad() bool { return e.runtime.IsRightHandGripGamepad() }
func (e *Engine) Pose(h domain.Hand) domain.Pose { return e.runtime.Pose(h) }
func (e *Engine) LeftHandPosition() r3.Vec { return e.runtime.LeftHandPosition() }
func (e *Engine) RightHandPosition() r3.Vec { return e.runtime.RightHandPosition() }

// Generators exposes the reference generator set, e.g. to inspect idle timers.
func (e *Engine) Generators() *generators.Set { return e.gens }

// Snapshot captures the modes and hand targets for persistence.
func (e *Engine) Snapshot(profileID string) domain.Snapshot {
	return e.runtime.Snapshot(profileID)
}

// RestoreModes applies the modes of a snapshot through the regular setters.
func (e *Engine) RestoreModes(s domain.Snapshot) bool {
	return e.runtime.RestoreModes(s)
}
