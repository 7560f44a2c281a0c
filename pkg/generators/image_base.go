package generators

import (
	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// ImageBase exposes image-based hand tracking samples. It never pushes
// requests: the integrator switches a hand over as soon as HasUpdate reports
// a fresh sample.
//
// Before any sample arrives the states hold the arms down, so forcing them
// after an avatar load stands the avatar still.
type ImageBase struct {
	states [2]*handState
	fresh  [2]bool
}

func NewImageBase() *ImageBase {
	g := &ImageBase{}
	for _, h := range domain.Hands {
		g.states[h] = newHandState(domain.TargetImageBaseHand, standingPosition(h), armsDown)
	}
	return g
}

func standingPosition(h domain.Hand) r3.Vec {
	return r3.Vec{X: side(h) * 0.25, Y: 0.8, Z: 0}
}

func (g *ImageBase) Name() string { return "image_base" }
func (g *ImageBase) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *ImageBase) State(h domain.Hand) domain.HandState { return g.states[h] }

// Feed stores a tracked pose and marks the hand as updated.
func (g *ImageBase) Feed(h domain.Hand, pose domain.Pose) {
	g.states[h].pos = pose.Position
	g.states[h].rot = pose.Rotation
	g.fresh[h] = true
}

// Lost drops tracking of a hand back to the standing pose without requesting it.
func (g *ImageBase) Lost(h domain.Hand) {
	g.states[h].pos = standingPosition(h)
	g.states[h].rot = armsDown
}

func (g *ImageBase) HasUpdate(h domain.Hand) bool { return g.fresh[h] }
func (g *ImageBase) ClearUpdate(h domain.Hand) { g.fresh[h] = false }

func (g *ImageBase) Update(domain.Frame) {}
func (g *ImageBase) LateUpdate(domain.Frame) {}
