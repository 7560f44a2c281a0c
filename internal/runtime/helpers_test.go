package runtime_test

import (
	"fmt"

	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// recorder collects lifecycle calls across states and generators.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	if r != nil {
		r.calls = append(r.calls, fmt.Sprintf(format, args...))
	}
}

type fakeState struct {
	name   string
	target domain.TargetType
	pos    r3.Vec
	rot    quat.Number
	rec    *recorder

	entered []domain.HandState
	quit    []domain.HandState
}

func newState(name string, target domain.TargetType, x float64, rec *recorder) *fakeState {
	return &fakeState{
		name:   name,
		target: target,
		pos:    r3.Vec{X: x},
		rot:    domain.IdentityRotation,
		rec:    rec,
	}
}

func (s *fakeState) Position() r3.Vec { return s.pos }
func (s *fakeState) Rotation() quat.Number { return s.rot }
func (s *fakeState) TargetType() domain.TargetType { return s.target }

func (s *fakeState) Enter(prev domain.HandState) {
	s.entered = append(s.entered, prev)
	s.rec.add("enter:%s", s.name)
}

func (s *fakeState) Quit(next domain.HandState) {
	s.quit = append(s.quit, next)
	s.rec.add("quit:%s", s.name)
}

type fakeGenerator struct {
	name   string
	caps   domain.Capability
	states [2]*fakeState
	rec    *recorder
	sink   domain.RequestSink

	// late holds requests pushed during LateUpdate.
	late []domain.Hand
}

func newGenerator(name string, target domain.TargetType, caps domain.Capability, rec *recorder) *fakeGenerator {
	g := &fakeGenerator{name: name, caps: caps, rec: rec}
	for _, h := range domain.Hands {
		if caps.Has(h) {
			g.states[h] = newState(name+"/"+h.String(), target, float64(target), rec)
		}
	}
	return g
}

func (g *fakeGenerator) Name() string { return g.name }
func (g *fakeGenerator) Capabilities() domain.Capability { return g.caps }
func (g *fakeGenerator) State(h domain.Hand) domain.HandState {
	return g.states[h]
}

func (g *fakeGenerator) Update(domain.Frame) { g.rec.add("update:%s", g.name) }

func (g *fakeGenerator) LateUpdate(domain.Frame) {
	g.rec.add("late:%s", g.name)
	for _, h := range g.late {
		g.sink.RequestToUse(h, g.states[h])
	}
	g.late = nil
}

func (g *fakeGenerator) request(h domain.Hand) {
	g.sink.RequestToUse(h, g.states[h])
}

type typingGenerator struct {
	*fakeGenerator
	timedOut [2]bool
	resets   []bool
	yOffset  float64
	timeout  []bool
}

func (g *typingGenerator) TimeoutReached(h domain.Hand) bool { return g.timedOut[h] }
func (g *typingGenerator) ResetHandDownTimeout(refresh bool) { g.resets = append(g.resets, refresh) }
func (g *typingGenerator) SetYOffset(offset float64) { g.yOffset = offset }
func (g *typingGenerator) SetHandDownTimeout(enabled bool) { g.timeout = append(g.timeout, enabled) }

type pointerGenerator struct {
	*fakeGenerator
	idle    bool
	hid     []bool
	yOffset float64
}

func (g *pointerGenerator) NoInputTimeoutReached() bool { return g.idle }
func (g *pointerGenerator) SetHIDEnabled(enabled bool) { g.hid = append(g.hid, enabled) }
func (g *pointerGenerator) SetYOffset(offset float64) { g.yOffset = offset }

type trackerGenerator struct {
	*fakeGenerator
	fresh   [2]bool
	cleared []domain.Hand
}

func (g *trackerGenerator) HasUpdate(h domain.Hand) bool { return g.fresh[h] }

func (g *trackerGenerator) ClearUpdate(h domain.Hand) {
	g.fresh[h] = false
	g.cleared = append(g.cleared, h)
}

type sinkRecorder struct {
	rec   *recorder
	poses map[domain.Hand]domain.Pose
}

func (s *sinkRecorder) CommitTarget(h domain.Hand, p domain.Pose) {
	s.rec.add("commit:%s", h)
	s.poses[h] = p
}
