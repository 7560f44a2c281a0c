package handik

import (
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/motion"
)

// HandStatus is the observable state of one hand.
type HandStatus struct {
	Target   domain.TargetType `json:"target"`
	Pose     domain.Pose       `json:"pose"`
	Cooldown float64           `json:"cooldown"`
	Blending bool              `json:"blending"`
}

// State is a read-only view of the engine after a frame.
type State struct {
	Modes        domain.Modes       `json:"modes"`
	YOffset      float64            `json:"y_offset"`
	AvatarLoaded bool               `json:"avatar_loaded"`
	Left         HandStatus         `json:"left"`
	Right        HandStatus         `json:"right"`
	Motion       motion.PlayerState `json:"motion"`
	// Playing lists custom clips from the motion repository, newest first.
	Playing []string `json:"playing,omitempty"`
}

// State captures the engine state. The returned value shares nothing with
// the engine.
func (e *Engine) State() State {
	s := State{
		Modes:        e.runtime.Modes(),
		YOffset:      e.runtime.YOffsetAlways(),
		AvatarLoaded: e.runtime.AvatarLoaded(),
		Left:         e.handStatus(domain.HandLeft),
		Right:        e.handStatus(domain.HandRight),
		Motion:       e.player.State(),
	}
	if e.motions != nil {
		s.Playing = e.motions.Playing()
	}
	return s
}

func (e *Engine) handStatus(h domain.Hand) HandStatus {
	m := e.runtime.Machine(h)
	return HandStatus{
		Target:   m.TargetType(),
		Pose:     e.runtime.Pose(h),
		Cooldown: m.Cooldown(),
		Blending: m.Blending(),
	}
}
