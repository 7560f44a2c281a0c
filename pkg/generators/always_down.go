package generators

import (
	"github.com/aretw0/handik/pkg/domain"
)

// AlwaysDown keeps requesting the lowered pose for both hands while the
// always-hand-down mode is on.
type AlwaysDown struct {
	dep    Dependency
	states [2]*handState
}

func NewAlwaysDown(dep Dependency) *AlwaysDown {
	g := &AlwaysDown{dep: dep}
	for _, h := range domain.Hands {
		g.states[h] = newHandState(domain.TargetAlwaysDown, DownPosition(h), armsDown)
	}
	return g
}

func (g *AlwaysDown) Name() string { return "always_down" }
func (g *AlwaysDown) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *AlwaysDown) State(h domain.Hand) domain.HandState { return g.states[h] }

// Update requests until the integrator accepts; early requests can land
// inside a cooldown.
func (g *AlwaysDown) Update(f domain.Frame) {
	if !f.Modes.AlwaysHandDown {
		return
	}
	for _, h := range domain.Hands {
		if g.dep.Runtime.TargetType(h) != domain.TargetAlwaysDown {
			g.dep.Requests.RequestToUse(h, g.states[h])
		}
	}
}

func (g *AlwaysDown) LateUpdate(domain.Frame) {}
