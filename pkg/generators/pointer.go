package generators

import (
	"github.com/aretw0/handik/internal/runtime"
	"github.com/aretw0/handik/pkg/blend"
	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	mouseOrigin        = r3.Vec{X: 0.25, Y: 0.9, Z: 0.25}
	presentationOrigin = r3.Vec{X: 0.3, Y: 1.3, Z: 0.4}
	penOrigin          = r3.Vec{X: 0.2, Y: 0.92, Z: 0.3}
)

// Pointer drives the right hand from pointer input. Which of its three
// states moves depends on the keyboard and mouse mode: mouse, presentation
// or pen tablet.
type Pointer struct {
	dep          Dependency
	mouse        *handState
	presentation *handState
	pen          *handState

	cursor  r3.Vec
	idle    float64
	down    float64
	yOffset float64
	enabled bool
	timeout bool
	clicks  int
}

func NewPointer(dep Dependency) *Pointer {
	g := &Pointer{
		dep:          dep,
		mouse:        newHandState(domain.TargetMouse, mouseOrigin, palmDown),
		presentation: newHandState(domain.TargetPresentation, presentationOrigin, armsDown),
		pen:          newHandState(domain.TargetPenTablet, penOrigin, palmDown),
		enabled:      dep.Runtime.Modes().EnableHidArmMotion(),
		timeout:      true,
	}
	dep.Events.OnMouseMove(g.move)
	dep.Events.OnMouseButton(g.button)
	return g
}

func (g *Pointer) Name() string { return "pointer" }
func (g *Pointer) Capabilities() domain.Capability { return domain.CapRightHand }

// State returns the right-hand state matching the current keyboard and mouse mode.
func (g *Pointer) State(h domain.Hand) domain.HandState {
	if h != domain.HandRight {
		return nil
	}
	return g.active(g.dep.Runtime.Modes())
}

func (g *Pointer) active(m domain.Modes) *handState {
	switch m.PointerTargetType() {
	case domain.TargetMouse:
		return g.mouse
	case domain.TargetPresentation:
		return g.presentation
	}
	return g.pen
}

// move takes a screen position normalized to [-1, 1] on both axes.
func (g *Pointer) move(pos r3.Vec) {
	if !g.enabled {
		return
	}
	g.cursor = r3.Vec{X: clampUnit(pos.X), Y: clampUnit(pos.Y)}
	g.idle = 0
	g.dep.Requests.RequestToUse(domain.HandRight, g.active(g.dep.Runtime.Modes()))
}

func (g *Pointer) button(string) {
	if !g.enabled {
		return
	}
	g.clicks++
	g.idle = 0
	g.dep.Requests.RequestToUse(domain.HandRight, g.active(g.dep.Runtime.Modes()))
}

func (g *Pointer) Update(f domain.Frame) {
	if !g.enabled {
		return
	}
	g.idle += f.Dt

	if g.dep.Runtime.CheckTypingOrMouseHandsCanMoveDown() {
		g.down = approach(g.down, 1, runtime.HandDownBlendSpeed*f.Dt)
	} else {
		g.down = approach(g.down, 0, runtime.HandUpBlendSpeed*f.Dt)
	}

	mouse := r3.Vec{
		X: mouseOrigin.X + g.cursor.X*0.05,
		Y: mouseOrigin.Y + g.yOffset,
		Z: mouseOrigin.Z + g.cursor.Y*0.05,
	}
	g.mouse.pos = blend.Lerp(mouse, DownPosition(domain.HandRight), blend.Ease(g.down))

	g.presentation.pos = r3.Vec{
		X: presentationOrigin.X + g.cursor.X*0.2,
		Y: presentationOrigin.Y + g.cursor.Y*0.15,
		Z: presentationOrigin.Z,
	}

	g.pen.pos = r3.Vec{
		X: penOrigin.X + g.cursor.X*0.1,
		Y: penOrigin.Y + g.yOffset,
		Z: penOrigin.Z + g.cursor.Y*0.07,
	}
}

func (g *Pointer) LateUpdate(domain.Frame) {}

// NoInputTimeoutReached reports whether the pointer has been idle for AutoHandDownDuration.
func (g *Pointer) NoInputTimeoutReached() bool {
	return g.timeout && g.idle >= runtime.AutoHandDownDuration
}

func (g *Pointer) ResetHandDownTimeout(refresh bool) {
	g.idle = 0
	if refresh {
		g.down = 0
	}
}

// SetHIDEnabled freezes the pointer hand while HID arm motion is off.
func (g *Pointer) SetHIDEnabled(enabled bool) { g.enabled = enabled }
func (g *Pointer) SetHandDownTimeout(enabled bool) { g.timeout = enabled }
func (g *Pointer) SetYOffset(offset float64) { g.yOffset = offset }

// Clicks counts the mouse buttons that reached the pointer.
func (g *Pointer) Clicks() int { return g.clicks }
