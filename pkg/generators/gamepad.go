package generators

import (
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const stickReach = 0.012

var padOrigin = r3.Vec{X: 0, Y: 1.0, Z: 0.3}

// Gamepad holds a controller with both hands while the gamepad motion mode
// is active. Sticks tilt the thumbs; buttons press into the pad.
type Gamepad struct {
	dep    Dependency
	states [2]*handState

	sticks  [2]r2.Vec
	pressed [2]int
}

func NewGamepad(dep Dependency) *Gamepad {
	g := &Gamepad{dep: dep}
	for _, h := range domain.Hands {
		g.states[h] = newHandState(domain.TargetGamepad, padGrip(h), palmDown)
	}
	dep.Events.OnLeftStick(func(v r2.Vec) { g.stick(domain.HandLeft, v) })
	dep.Events.OnRightStick(func(v r2.Vec) { g.stick(domain.HandRight, v) })
	dep.Events.OnButtonDown(g.buttonDown)
	dep.Events.OnButtonUp(g.buttonUp)
	dep.Events.OnButtonStick(g.buttonStick)
	return g
}

func padGrip(h domain.Hand) r3.Vec {
	return r3.Vec{X: padOrigin.X + side(h)*0.08, Y: padOrigin.Y, Z: padOrigin.Z}
}

// buttonHand is the hand that reaches a button on a standard pad.
func buttonHand(key input.GamepadKey) domain.Hand {
	switch key {
	case input.GamepadKeyUp, input.GamepadKeyDown, input.GamepadKeyLeft, input.GamepadKeyRight,
		input.GamepadKeyLShoulder, input.GamepadKeyLTrigger, input.GamepadKeySelect:
		return domain.HandLeft
	}
	return domain.HandRight
}

func (g *Gamepad) Name() string { return "gamepad" }
func (g *Gamepad) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *Gamepad) State(h domain.Hand) domain.HandState { return g.states[h] }

func (g *Gamepad) active() bool {
	return g.dep.Runtime.Modes().Gamepad == domain.GamepadMotionGamepad
}

func (g *Gamepad) stick(h domain.Hand, v r2.Vec) {
	if !g.active() {
		return
	}
	g.sticks[h] = r2.Vec{X: clampUnit(v.X), Y: clampUnit(v.Y)}
	g.dep.Requests.RequestToUse(h, g.states[h])
}

func (g *Gamepad) buttonDown(key input.GamepadKey) {
	if !g.active() {
		return
	}
	h := buttonHand(key)
	g.pressed[h]++
	g.dep.Requests.RequestToUse(h, g.states[h])
}

func (g *Gamepad) buttonUp(key input.GamepadKey) {
	h := buttonHand(key)
	if g.pressed[h] > 0 {
		g.pressed[h]--
	}
}

func (g *Gamepad) buttonStick(pos input.StickPosition) {
	if !g.active() {
		return
	}
	g.sticks[domain.HandLeft] = r2.Vec{X: float64(pos.X), Y: float64(pos.Y)}
	g.dep.Requests.RequestToUse(domain.HandLeft, g.states[domain.HandLeft])
}

func (g *Gamepad) Update(domain.Frame) {
	for _, h := range domain.Hands {
		pos := padGrip(h)
		pos.X += g.sticks[h].X * stickReach
		pos.Z += g.sticks[h].Y * stickReach
		if g.pressed[h] > 0 {
			pos.Y -= 0.005
		}
		g.states[h].pos = pos
	}
}

func (g *Gamepad) LateUpdate(domain.Frame) {}
