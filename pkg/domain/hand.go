package domain

import (
	"fmt"
	"strings"
)

// Hand identifies one of the two driven limbs.
type Hand int

const (
	HandLeft Hand = iota
	HandRight
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	}
	return fmt.Sprintf("hand(%d)", int(h))
}

// ParseHand converts "left"/"right" (case-insensitive) into a Hand.
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return HandLeft, nil
	case "right", "r":
		return HandRight, nil
	}
	return HandLeft, fmt.Errorf("unknown hand %q", s)
}

// Hands lists both hands in update order.
var Hands = [...]Hand{HandLeft, HandRight}

// TargetType is the semantic input source a hand is currently tracking.
// The values are mutually exclusive per hand.
type TargetType int

const (
	// TargetMouse is used by the right hand only.
	TargetMouse TargetType = iota
	TargetKeyboard
	// TargetPresentation is used by the right hand only. The left hand in
	// presentation mode is still TargetKeyboard.
	TargetPresentation
	TargetPenTablet
	TargetGamepad
	TargetArcadeStick
	TargetMidiController
	TargetImageBaseHand
	TargetAlwaysDown
	TargetUnknown
)

var targetTypeNames = [...]string{
	TargetMouse:          "mouse",
	TargetKeyboard:       "keyboard",
	TargetPresentation:   "presentation",
	TargetPenTablet:      "pen_tablet",
	TargetGamepad:        "gamepad",
	TargetArcadeStick:    "arcade_stick",
	TargetMidiController: "midi_controller",
	TargetImageBaseHand:  "image_base_hand",
	TargetAlwaysDown:     "always_down",
	TargetUnknown:        "unknown",
}

func (t TargetType) String() string {
	if t < 0 || int(t) >= len(targetTypeNames) {
		return fmt.Sprintf("target(%d)", int(t))
	}
	return targetTypeNames[t]
}

// ParseTargetType is the inverse of TargetType.String.
func ParseTargetType(s string) (TargetType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range targetTypeNames {
		if n == name {
			return TargetType(i), nil
		}
	}
	return TargetUnknown, fmt.Errorf("%w: %q", ErrUnknownTargetType, s)
}

// MarshalText lets target types appear by name in JSON and YAML.
func (t TargetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the name produced by MarshalText.
func (t *TargetType) UnmarshalText(b []byte) error {
	v, err := ParseTargetType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
