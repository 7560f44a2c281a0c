package generators

import (
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	leverOrigin  = r3.Vec{X: -0.12, Y: 0.98, Z: 0.28}
	buttonOrigin = r3.Vec{X: 0.1, Y: 0.97, Z: 0.28}
)

// ArcadeStick puts the left hand on the lever and the right hand over the
// buttons while the arcade stick motion mode is active.
type ArcadeStick struct {
	dep    Dependency
	states [2]*handState

	lever  input.StickPosition
	button input.GamepadKey
}

func NewArcadeStick(dep Dependency) *ArcadeStick {
	g := &ArcadeStick{dep: dep}
	g.states[domain.HandLeft] = newHandState(domain.TargetArcadeStick, leverOrigin, palmDown)
	g.states[domain.HandRight] = newHandState(domain.TargetArcadeStick, buttonOrigin, palmDown)
	dep.Events.OnButtonStick(g.moveLever)
	dep.Events.OnButtonDown(g.press)
	return g
}

func (g *ArcadeStick) Name() string { return "arcade_stick" }
func (g *ArcadeStick) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *ArcadeStick) State(h domain.Hand) domain.HandState { return g.states[h] }

func (g *ArcadeStick) active() bool {
	return g.dep.Runtime.Modes().Gamepad == domain.GamepadMotionArcadeStick
}

func (g *ArcadeStick) moveLever(pos input.StickPosition) {
	if !g.active() {
		return
	}
	g.lever = pos
	g.dep.Requests.RequestToUse(domain.HandLeft, g.states[domain.HandLeft])
}

func (g *ArcadeStick) press(key input.GamepadKey) {
	if !g.active() || !key.IsArcadeStickButton() {
		return
	}
	g.button = key
	g.dep.Requests.RequestToUse(domain.HandRight, g.states[domain.HandRight])
}

// arcadeLayout places the eight buttons in two rows of four.
var arcadeLayout = map[input.GamepadKey][2]int{
	input.GamepadKeyX:         {0, 0},
	input.GamepadKeyY:         {1, 0},
	input.GamepadKeyRShoulder: {2, 0},
	input.GamepadKeyLShoulder: {3, 0},
	input.GamepadKeyA:         {0, 1},
	input.GamepadKeyB:         {1, 1},
	input.GamepadKeyRTrigger:  {2, 1},
	input.GamepadKeyLTrigger:  {3, 1},
}

func buttonOffset(key input.GamepadKey) r3.Vec {
	cell, ok := arcadeLayout[key]
	if !ok {
		return r3.Vec{}
	}
	return r3.Vec{X: float64(cell[0]) * 0.03, Z: -float64(cell[1]) * 0.03}
}

func (g *ArcadeStick) Update(domain.Frame) {
	g.states[domain.HandLeft].pos = r3.Vec{
		X: leverOrigin.X + float64(g.lever.X)*0.015,
		Y: leverOrigin.Y,
		Z: leverOrigin.Z + float64(g.lever.Y)*0.015,
	}
	off := buttonOffset(g.button)
	g.states[domain.HandRight].pos = r3.Vec{
		X: buttonOrigin.X + off.X,
		Y: buttonOrigin.Y,
		Z: buttonOrigin.Z + off.Z,
	}
}

func (g *ArcadeStick) LateUpdate(domain.Frame) {}
