package domain

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// HandState is the momentary pose contract a generator exposes for one hand.
//
// Position and Rotation may change between frames while the state is active.
// Enter and Quit are called exactly once per transition, Quit on the outgoing
// state before Enter on the incoming one.
type HandState interface {
	Position() r3.Vec
	Rotation() quat.Number
	TargetType() TargetType

	// Enter is called when the state becomes active. prev is the state that
	// was active before it.
	Enter(prev HandState)

	// Quit is called when the state is replaced. next is the state taking over.
	Quit(next HandState)
}

// Capability flags which hands a generator can drive.
type Capability uint8

const (
	CapLeftHand Capability = 1 << iota
	CapRightHand

	CapBothHands = CapLeftHand | CapRightHand
)

// Has reports whether c includes the given hand.
func (c Capability) Has(h Hand) bool {
	switch h {
	case HandLeft:
		return c&CapLeftHand != 0
	case HandRight:
		return c&CapRightHand != 0
	}
	return false
}
