package generators

import (
	"math"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dependency is what every generator is constructed with.
type Dependency struct {
	Requests domain.RequestSink
	Runtime  domain.RuntimeView
	Events   *input.Events
}

// handState is the HandState shared by all reference generators.
type handState struct {
	target domain.TargetType
	pos    r3.Vec
	rot    quat.Number

	onEnter func(prev domain.HandState)
	onQuit  func(next domain.HandState)
}

func newHandState(target domain.TargetType, pos r3.Vec, rot quat.Number) *handState {
	return &handState{target: target, pos: pos, rot: rot}
}

func (s *handState) Position() r3.Vec { return s.pos }
func (s *handState) Rotation() quat.Number { return s.rot }
func (s *handState) TargetType() domain.TargetType { return s.target }

func (s *handState) Enter(prev domain.HandState) {
	if s.onEnter != nil {
		s.onEnter(prev)
	}
}

func (s *handState) Quit(next domain.HandState) {
	if s.onQuit != nil {
		s.onQuit(next)
	}
}

// axisAngle is the rotation of angle radians about a unit axis.
func axisAngle(axis r3.Vec, angle float64) quat.Number {
	s := math.Sin(angle / 2)
	return quat.Number{Real: math.Cos(angle / 2), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

var (
	// Palms facing down, onto a keyboard or pad.
	palmDown = axisAngle(r3.Vec{X: 1}, math.Pi/2)
	// Arms hanging along the body.
	armsDown = axisAngle(r3.Vec{Z: 1}, 0)
)

// DownPosition is where a hand rests when lowered.
func DownPosition(h domain.Hand) r3.Vec {
	return r3.Vec{X: side(h) * 0.22, Y: 0.78, Z: 0.02}
}

// side is -1 for the left hand and 1 for the right.
func side(h domain.Hand) float64 {
	if h == domain.HandLeft {
		return -1
	}
	return 1
}

// approach moves cur towards target by at most step.
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(target, cur+step)
	}
	return math.Max(target, cur-step)
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
