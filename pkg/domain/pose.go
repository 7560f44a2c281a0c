package domain

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// IdentityRotation is the rotation that leaves a vector unchanged.
var IdentityRotation = quat.Number{Real: 1}

// Pose is the position and orientation of a hand IK target in avatar-local space.
type Pose struct {
	Position r3.Vec      `json:"position"`
	Rotation quat.Number `json:"rotation"`
}

// PoseOf samples the current pose of a hand state.
func PoseOf(s HandState) Pose {
	return Pose{Position: s.Position(), Rotation: s.Rotation()}
}

// TargetSink receives the committed IK target of each hand once per frame.
type TargetSink interface {
	CommitTarget(hand Hand, pose Pose)
}

// TargetSinkFunc adapts a function to TargetSink.
type TargetSinkFunc func(hand Hand, pose Pose)

func (f TargetSinkFunc) CommitTarget(hand Hand, pose Pose) { f(hand, pose) }
