package generators

import "github.com/aretw0/handik/pkg/domain"

// Set is the full reference generator set.
type Set struct {
	Typing      *Typing
	Pointer     *Pointer
	Gamepad     *Gamepad
	ArcadeStick *ArcadeStick
	Midi        *Midi
	ImageBase   *ImageBase
	AlwaysDown  *AlwaysDown
}

// NewSet builds every reference generator against dep.
func NewSet(dep Dependency) *Set {
	return &Set{
		Typing:      NewTyping(dep),
		Pointer:     NewPointer(dep),
		Gamepad:     NewGamepad(dep),
		ArcadeStick: NewArcadeStick(dep),
		Midi:        NewMidi(dep),
		ImageBase:   NewImageBase(),
		AlwaysDown:  NewAlwaysDown(dep),
	}
}

// All lists the generators in update order.
func (s *Set) All() []domain.Generator {
	return []domain.Generator{
		s.Typing,
		s.Pointer,
		s.Gamepad,
		s.ArcadeStick,
		s.Midi,
		s.ImageBase,
		s.AlwaysDown,
	}
}
