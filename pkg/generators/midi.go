package generators

import (
	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	knobCount  = 8
	middleNote = 60
	notePitch  = 0.012
	knobPitch  = 0.03
	knobTwist  = 0.01
)

var midiOrigin = r3.Vec{X: 0, Y: 0.93, Z: 0.32}

// Midi moves a hand to the knob or key of a MIDI controller. Knobs 0-3 and
// notes below middle C belong to the left hand.
type Midi struct {
	dep    Dependency
	states [2]*handState
	spots  [2]r3.Vec

	yOffset float64
}

func NewMidi(dep Dependency) *Midi {
	g := &Midi{dep: dep}
	for _, h := range domain.Hands {
		g.spots[h] = r3.Vec{X: midiOrigin.X + side(h)*0.1, Y: midiOrigin.Y, Z: midiOrigin.Z}
		g.states[h] = newHandState(domain.TargetMidiController, g.spots[h], palmDown)
	}
	dep.Events.OnKnobValueChange(g.knob)
	dep.Events.OnNoteOn(g.note)
	return g
}

func (g *Midi) Name() string { return "midi" }
func (g *Midi) Capabilities() domain.Capability { return domain.CapBothHands }
func (g *Midi) State(h domain.Hand) domain.HandState { return g.states[h] }

func (g *Midi) knob(knob int, value float64) {
	if knob < 0 || knob >= knobCount {
		return
	}
	h := domain.HandRight
	if knob < knobCount/2 {
		h = domain.HandLeft
	}
	g.spots[h] = r3.Vec{
		X: midiOrigin.X + (float64(knob)-3.5)*knobPitch + clampUnit(value)*knobTwist,
		Y: midiOrigin.Y,
		Z: midiOrigin.Z + 0.06,
	}
	g.dep.Requests.RequestToUse(h, g.states[h])
}

func (g *Midi) note(note int) {
	if note < 0 || note > 127 {
		return
	}
	h := domain.HandRight
	if note < middleNote {
		h = domain.HandLeft
	}
	g.spots[h] = r3.Vec{
		X: midiOrigin.X + float64(note-middleNote)*notePitch,
		Y: midiOrigin.Y,
		Z: midiOrigin.Z,
	}
	g.dep.Requests.RequestToUse(h, g.states[h])
}

func (g *Midi) Update(domain.Frame) {
	for _, h := range domain.Hands {
		pos := g.spots[h]
		pos.Y += g.yOffset
		g.states[h].pos = pos
	}
}

func (g *Midi) LateUpdate(domain.Frame) {}

func (g *Midi) SetYOffset(offset float64) { g.yOffset = offset }
