package generators

import (
	"strings"

	"github.com/aretw0/handik/internal/runtime"
	"github.com/aretw0/handik/pkg/blend"
	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

const keyPitch = 0.019

var (
	keyRows        = [...]string{"1234567890", "qwertyuiop", "asdfghjkl;", "zxcvbnm,./"}
	keyboardOrigin = r3.Vec{X: 0, Y: 0.95, Z: 0.3}
)

// keyPosition maps a key name to the hand that presses it and the key's
// location. Keys off the layout go to the right hand's home position.
func keyPosition(key string) (domain.Hand, r3.Vec) {
	k := strings.ToLower(key)
	if len(k) != 1 {
		return domain.HandRight, homePosition(domain.HandRight)
	}
	for row, keys := range keyRows {
		if col := strings.Index(keys, k); col >= 0 {
			h := domain.HandRight
			if col < 5 {
				h = domain.HandLeft
			}
			return h, r3.Vec{
				X: keyboardOrigin.X + (float64(col)-4.5)*keyPitch + float64(row)*0.005,
				Y: keyboardOrigin.Y,
				Z: keyboardOrigin.Z - float64(row)*keyPitch,
			}
		}
	}
	return domain.HandRight, homePosition(domain.HandRight)
}

// homePosition rests the index fingers on F and J.
func homePosition(h domain.Hand) r3.Vec {
	key := "j"
	if h == domain.HandLeft {
		key = "f"
	}
	_, pos := keyPosition(key)
	return pos
}

// Typing places both hands on the keyboard and lowers them after a long
// idle period. It is the initial generator of both hands.
type Typing struct {
	dep    Dependency
	states [2]*handState

	keys    [2]r3.Vec
	idle    [2]float64
	down    float64
	yOffset float64
	timeout bool
}

func NewTyping(dep Dependency) *Typing {
	g := &Typing{dep: dep, timeout: true}
	for _, h := range domain.Hands {
		g.keys[h] = homePosition(h)
		g.states[h] = newHandState(domain.TargetKeyboard, g.keys[h], palmDown)
	}
	dep.Events.OnKeyDown(g.keyDown)
	return g
}

func (g *Typing) Name() string { return "typing" }
func (g *Typing) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *Typing) State(h domain.Hand) domain.HandState { return g.states[h] }

func (g *Typing) keyDown(key string) {
	h, pos := keyPosition(key)
	g.keys[h] = pos
	g.idle[h] = 0
	g.dep.Requests.RequestToUse(h, g.states[h])
}

func (g *Typing) Update(f domain.Frame) {
	for _, h := range domain.Hands {
		g.idle[h] += f.Dt
	}

	if g.dep.Runtime.CheckTypingOrMouseHandsCanMoveDown() {
		g.down = approach(g.down, 1, runtime.HandDownBlendSpeed*f.Dt)
	} else {
		g.down = approach(g.down, 0, runtime.HandUpBlendSpeed*f.Dt)
	}

	w := blend.Ease(g.down)
	for _, h := range domain.Hands {
		up := g.keys[h]
		up.Y += g.yOffset
		g.states[h].pos = blend.Lerp(up, DownPosition(h), w)
	}
}

func (g *Typing) LateUpdate(domain.Frame) {}

// TimeoutReached reports whether the hand has not typed for AutoHandDownDuration.
func (g *Typing) TimeoutReached(h domain.Hand) bool {
	return g.timeout && g.idle[h] >= runtime.AutoHandDownDuration
}

func (g *Typing) ResetHandDownTimeout(refresh bool) {
	g.idle = [2]float64{}
	if refresh {
		g.down = 0
	}
}

func (g *Typing) SetHandDownTimeout(enabled bool) { g.timeout = enabled }
func (g *Typing) SetYOffset(offset float64) { g.yOffset = offset }

// DownRate is how far the hands have been lowered, from 0 (typing) to 1.
func (g *Typing) DownRate() float64 { return g.down }
