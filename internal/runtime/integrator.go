package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrAlreadyStarted is returned when generators are registered or the
	// integrator is started a second time.
	ErrAlreadyStarted = errors.New("integrator already started")
	// ErrDuplicateGenerator is returned when two generators share a name.
	ErrDuplicateGenerator = errors.New("duplicate generator")
	// ErrInvalidGenerator is returned for generators that cannot drive any hand,
	// or an initial generator that cannot drive both.
	ErrInvalidGenerator = errors.New("invalid generator")
)

// Integrator arbitrates which generator drives each hand.
type Integrator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	sink   domain.TargetSink
	now    func() time.Time

	events *input.Events
	queue  RequestQueue
	modes  atomic.Pointer[domain.Modes]

	generators []domain.Generator
	names      map[string]struct{}

	typing  domain.TypingTimeouts
	pointer domain.PointerTimeout
	tracker trackerGenerator

	hands   [2]*HandMachine
	poses   [2]domain.Pose
	yOffset float64
	avatar  bool
}

var _ domain.RuntimeView = (*Integrator)(nil)

type trackerGenerator interface {
	domain.Generator
	domain.ImageTracker
}

// New creates an integrator with default modes and no generators.
func New(opts ...Option) *Integrator {
	in := &Integrator{
		logger: logging.NewNop(),
		now:    time.Now,
		events: input.NewEvents(),
		names:  make(map[string]struct{}),
	}
	defaults := domain.DefaultModes()
	in.modes.Store(&defaults)
	in.poses = [2]domain.Pose{
		{Rotation: domain.IdentityRotation},
		{Rotation: domain.IdentityRotation},
	}

	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Events is the dispatcher generators subscribe to. Only gated input is raised on it.
func (in *Integrator) Events() *input.Events {
	return in.events
}

// Requests is the sink generators push their requests into.
func (in *Integrator) Requests() domain.RequestSink {
	return &in.queue
}

// Register adds generators in update order. The first generator implementing
// each optional timeout or tracking interface is the one the policies consult.
func (in *Integrator) Register(gens ...domain.Generator) error {
	if in.started() {
		return ErrAlreadyStarted
	}
	for _, g := range gens {
		name := g.Name()
		if _, dup := in.names[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateGenerator, name)
		}
		if g.Capabilities()&domain.CapBothHands == 0 {
			return fmt.Errorf("%w: %s drives no hand", ErrInvalidGenerator, name)
		}
		in.names[name] = struct{}{}
		in.generators = append(in.generators, g)

		if t, ok := g.(domain.TypingTimeouts); ok && in.typing == nil {
			in.typing = t
		}
		if p, ok := g.(domain.PointerTimeout); ok && in.pointer == nil {
			in.pointer = p
		}
		if t, ok := g.(trackerGenerator); ok && in.tracker == nil {
			in.tracker = t
		}
	}
	return nil
}

// Start puts both hands on the states of initial, which must be registered
// and able to drive both hands.
func (in *Integrator) Start(initial domain.Generator) error {
	if in.started() {
		return ErrAlreadyStarted
	}
	if _, ok := in.names[initial.Name()]; !ok {
		return fmt.Errorf("%w: %s is not registered", ErrInvalidGenerator, initial.Name())
	}
	if initial.Capabilities() != domain.CapBothHands {
		return fmt.Errorf("%w: initial generator %s must drive both hands", ErrInvalidGenerator, initial.Name())
	}

	for _, h := range domain.Hands {
		m := NewHandMachine(h, initial.State(h))
		in.hands[h] = m
		in.poses[h] = domain.PoseOf(m.Current())
	}
	in.logger.Debug("integrator started",
		"initial", initial.Name(),
		"generators", len(in.generators),
	)
	return nil
}

func (in *Integrator) started() bool {
	return in.hands[domain.HandLeft] != nil
}

// Update runs one frame and returns the committed poses of both hands.
func (in *Integrator) Update(dt float64) (left, right domain.Pose) {
	if !in.started() {
		return in.poses[domain.HandLeft], in.poses[domain.HandRight]
	}

	f := domain.Frame{Dt: dt, Modes: in.Modes()}

	for _, g := range in.generators {
		g.Update(f)
	}

	// Continuous input was gated by CheckCoolDown before it reached the
	// queue. Discrete triggers always fire.
	in.queue.Drain(func(r Request) {
		in.requestState(r.Hand, r.State, f.Modes)
	})

	if in.tracker != nil {
		for _, h := range domain.Hands {
			if !in.tracker.Capabilities().Has(h) || !in.tracker.HasUpdate(h) {
				continue
			}
			in.tracker.ClearUpdate(h)
			in.requestState(h, in.tracker.State(h), f.Modes)
		}
	}

	for _, h := range domain.Hands {
		pose := in.hands[h].Advance(dt)
		in.poses[h] = pose
		if in.sink != nil {
			in.sink.CommitTarget(h, pose)
		}
	}

	for _, g := range in.generators {
		g.LateUpdate(f)
	}

	return in.poses[domain.HandLeft], in.poses[domain.HandRight]
}

// RequestState asks for candidate to take the hand over from outside the
// frame. The cooldown policy applies first, then the self-transition and
// always-down checks of the hand machine.
func (in *Integrator) RequestState(h domain.Hand, candidate domain.HandState) bool {
	m := in.machine(h)
	if m == nil || !m.CheckCoolDown(candidate.TargetType()) {
		return false
	}
	return in.requestState(h, candidate, in.Modes())
}

// requestState skips the cooldown. Queued generator requests and image
// tracking go through it.
func (in *Integrator) requestState(h domain.Hand, state domain.HandState, modes domain.Modes) bool {
	m := in.hands[h]
	from := m.TargetType()
	if !m.RequestState(state, modes.AlwaysHandDown) {
		return false
	}

	in.logger.Debug("hand target changed", "hand", h, "from", from, "to", m.TargetType())
	if in.hooks.OnTransition != nil {
		in.hooks.OnTransition(&domain.TransitionEvent{
			Timestamp: in.now(),
			Hand:      h,
			From:      from,
			To:        m.TargetType(),
		})
	}
	return true
}

// CheckCoolDown reports whether input for target may move the hand now.
// The device already holding the hand always passes.
func (in *Integrator) CheckCoolDown(hand domain.Hand, target domain.TargetType) bool {
	m := in.machine(hand)
	if m == nil {
		return true
	}
	return m.CheckCoolDown(target)
}

// CheckTypingOrMouseHandsCanMoveDown reports whether the idle timeouts of the
// typing and pointer hands allow them to be lowered.
func (in *Integrator) CheckTypingOrMouseHandsCanMoveDown() bool {
	left := in.TargetType(domain.HandLeft)
	right := in.TargetType(domain.HandRight)

	if left != domain.TargetKeyboard &&
		right != domain.TargetKeyboard &&
		right != domain.TargetMouse {
		return false
	}

	// A pen keeps both hands up, including a left hand resting on the keyboard.
	if right == domain.TargetPenTablet {
		return false
	}

	leftReady := left != domain.TargetKeyboard || in.typingTimeout(domain.HandLeft)
	rightReady := (right == domain.TargetKeyboard && in.typingTimeout(domain.HandRight)) ||
		(right == domain.TargetMouse && in.pointer != nil && in.pointer.NoInputTimeoutReached()) ||
		(right != domain.TargetKeyboard && right != domain.TargetMouse)

	return leftReady && rightReady
}

func (in *Integrator) typingTimeout(h domain.Hand) bool {
	return in.typing != nil && in.typing.TimeoutReached(h)
}

// OnAvatarLoaded discards poses blended before the avatar existed and puts
// both hands on the image tracking state, which stands the avatar still until
// real input arrives.
func (in *Integrator) OnAvatarLoaded() {
	in.avatar = true
	for _, g := range in.generators {
		if r, ok := g.(domain.TimeoutResetter); ok {
			r.ResetHandDownTimeout(true)
		}
	}

	if !in.started() || in.tracker == nil {
		return
	}
	modes := in.Modes()
	for _, h := range []domain.Hand{domain.HandRight, domain.HandLeft} {
		if !in.tracker.Capabilities().Has(h) {
			continue
		}
		in.tracker.ClearUpdate(h)
		in.requestState(h, in.tracker.State(h), modes)
	}
	in.logger.Info("avatar loaded")
}

// OnAvatarUnloaded marks the avatar as gone. Hand states are kept.
func (in *Integrator) OnAvatarUnloaded() {
	in.avatar = false
	in.logger.Info("avatar unloaded")
}

// AvatarLoaded reports whether an avatar is currently loaded.
func (in *Integrator) AvatarLoaded() bool {
	return in.avatar
}

func (in *Integrator) machine(h domain.Hand) *HandMachine {
	if h != domain.HandLeft && h != domain.HandRight {
		return nil
	}
	return in.hands[h]
}

// Machine exposes the state machine of one hand for inspection.
// It is nil before Start.
func (in *Integrator) Machine(h domain.Hand) *HandMachine {
	return in.machine(h)
}

// Generators returns the registered generators in update order.
func (in *Integrator) Generators() []domain.Generator {
	return append([]domain.Generator(nil), in.generators...)
}

// TargetType is the target type currently holding the hand. Both hands
// report keyboard before Start.
func (in *Integrator) TargetType(h domain.Hand) domain.TargetType {
	if m := in.machine(h); m != nil {
		return m.TargetType()
	}
	return domain.TargetKeyboard
}

func (in *Integrator) LeftTargetType() domain.TargetType  { return in.TargetType(domain.HandLeft) }
func (in *Integrator) RightTargetType() domain.TargetType { return in.TargetType(domain.HandRight) }

func (in *Integrator) IsLeftHandGripGamepad() bool {
	return in.TargetType(domain.HandLeft) == domain.TargetGamepad
}

func (in *Integrator) IsRightHandGripGamepad() bool {
	return in.TargetType(domain.HandRight) == domain.TargetGamepad
}

// Pose returns the pose committed for the hand on the last frame.
func (in *Integrator) Pose(h domain.Hand) domain.Pose {
	if h != domain.HandLeft && h != domain.HandRight {
		return domain.Pose{Rotation: domain.IdentityRotation}
	}
	return in.poses[h]
}

func (in *Integrator) LeftHandPosition() r3.Vec { return in.poses[domain.HandLeft].Position }
func (in *Integrator) RightHandPosition() r3.Vec { return in.poses[domain.HandRight].Position }

// Snapshot captures the modes and hand targets for persistence.
func (in *Integrator) Snapshot(profileID string) domain.Snapshot {
	return domain.Snapshot{
		ProfileID:   profileID,
		Modes:       in.Modes(),
		LeftTarget:  in.TargetType(domain.HandLeft),
		RightTarget: in.TargetType(domain.HandRight),
		SavedAt:     in.now(),
	}
}

// RestoreModes applies the modes of a snapshot through the regular setters,
// so invalid values are ignored and generators are notified as usual.
func (in *Integrator) RestoreModes(s domain.Snapshot) bool {
	return in.ApplyModes(s.Modes)
}
