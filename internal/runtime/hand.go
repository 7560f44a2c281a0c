package runtime

import (
	"github.com/aretw0/handik/pkg/blend"
	"github.com/aretw0/handik/pkg/domain"
)

const (
	// ToggleDuration is the blend time between two hand states, in seconds.
	ToggleDuration = 0.25
	// TypeChangeCoolDown is the minimum time after a transition before a
	// different device may take the hand over, in seconds.
	TypeChangeCoolDown = 0.3
	// AutoHandDownDuration is the idle time after which typing and pointer
	// hands may be lowered. The odd fraction avoids lining up with other periods.
	AutoHandDownDuration = 10.5
	// HandDownBlendSpeed lowers an idle hand over two seconds.
	HandDownBlendSpeed = 1.0 / 2.0
	// HandUpBlendSpeed raises it back in 0.4 seconds.
	HandUpBlendSpeed = 1.0 / 0.4
)

// HandMachine arbitrates the states of a single hand.
//
// previous is nil until the first accepted transition. Blending only happens
// after a transition, so Advance never reads a nil previous.
type HandMachine struct {
	hand         domain.Hand
	current      domain.HandState
	previous     domain.HandState
	targetType   domain.TargetType
	blendElapsed float64
	cooldown     float64
}

// NewHandMachine starts a hand on initial, fully blended and without cooldown.
func NewHandMachine(hand domain.Hand, initial domain.HandState) *HandMachine {
	return &HandMachine{
		hand:         hand,
		current:      initial,
		targetType:   initial.TargetType(),
		blendElapsed: ToggleDuration,
	}
}

// RequestState tries to make candidate the active state.
//
// The request is rejected when the candidate has the current target type, or
// when alwaysHandDown is set and the candidate is not the always-down state.
// Cooldown is not checked here. Continuous input is gated with CheckCoolDown
// before it is queued.
func (m *HandMachine) RequestState(candidate domain.HandState, alwaysHandDown bool) bool {
	target := candidate.TargetType()
	if target == m.targetType || (alwaysHandDown && target != domain.TargetAlwaysDown) {
		return false
	}

	m.targetType = target
	m.previous = m.current
	m.current = candidate
	m.cooldown = TypeChangeCoolDown
	m.blendElapsed = 0

	m.previous.Quit(m.current)
	m.current.Enter(m.previous)
	return true
}

// Advance steps the cooldown and blend timers by dt and returns the pose the
// hand target should take this frame.
func (m *HandMachine) Advance(dt float64) domain.Pose {
	if m.cooldown > 0 {
		m.cooldown -= dt
	}

	if m.blendElapsed >= ToggleDuration {
		return domain.PoseOf(m.current)
	}

	m.blendElapsed += dt
	if m.blendElapsed >= ToggleDuration {
		return domain.PoseOf(m.current)
	}

	t := blend.Ease(m.blendElapsed / ToggleDuration)
	return blend.Mix(domain.PoseOf(m.previous), domain.PoseOf(m.current), t)
}

// CanSwitch reports whether the cooldown has expired.
func (m *HandMachine) CanSwitch() bool {
	return m.cooldown <= 0
}

// CheckCoolDown allows input for the device already holding the hand, and
// for any other device once the cooldown has expired.
func (m *HandMachine) CheckCoolDown(target domain.TargetType) bool {
	return target == m.targetType || m.CanSwitch()
}

func (m *HandMachine) Hand() domain.Hand { return m.hand }
func (m *HandMachine) Current() domain.HandState { return m.current }
func (m *HandMachine) Previous() domain.HandState { return m.previous }
func (m *HandMachine) TargetType() domain.TargetType { return m.targetType }
func (m *HandMachine) Cooldown() float64 { return m.cooldown }
func (m *HandMachine) BlendElapsed() float64 { return m.blendElapsed }
func (m *HandMachine) Blending() bool { return m.blendElapsed < ToggleDuration }
