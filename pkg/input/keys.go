package input

import (
	"fmt"
	"strings"
)

// GamepadKey identifies a gamepad button.
type GamepadKey int

const (
	GamepadKeyUnknown GamepadKey = iota
	GamepadKeyA
	GamepadKeyB
	GamepadKeyX
	GamepadKeyY
	GamepadKeyUp
	GamepadKeyDown
	GamepadKeyLeft
	GamepadKeyRight
	GamepadKeyRShoulder
	GamepadKeyLShoulder
	GamepadKeyRTrigger
	GamepadKeyLTrigger
	GamepadKeyStart
	GamepadKeySelect
)

var gamepadKeyNames = [...]string{
	GamepadKeyUnknown:   "unknown",
	GamepadKeyA:         "a",
	GamepadKeyB:         "b",
	GamepadKeyX:         "x",
	GamepadKeyY:         "y",
	GamepadKeyUp:        "up",
	GamepadKeyDown:      "down",
	GamepadKeyLeft:      "left",
	GamepadKeyRight:     "right",
	GamepadKeyRShoulder: "r_shoulder",
	GamepadKeyLShoulder: "l_shoulder",
	GamepadKeyRTrigger:  "r_trigger",
	GamepadKeyLTrigger:  "l_trigger",
	GamepadKeyStart:     "start",
	GamepadKeySelect:    "select",
}

func (k GamepadKey) String() string {
	if k < 0 || int(k) >= len(gamepadKeyNames) {
		return fmt.Sprintf("gamepad_key(%d)", int(k))
	}
	return gamepadKeyNames[k]
}

// ParseGamepadKey converts a button name into a GamepadKey.
func ParseGamepadKey(s string) (GamepadKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range gamepadKeyNames {
		if n == name && i != int(GamepadKeyUnknown) {
			return GamepadKey(i), nil
		}
	}
	return GamepadKeyUnknown, fmt.Errorf("unknown gamepad key %q", s)
}

// IsArcadeStickButton reports whether the key is one of the face or shoulder
// buttons laid out on an arcade stick.
func (k GamepadKey) IsArcadeStickButton() bool {
	switch k {
	case GamepadKeyA, GamepadKeyB, GamepadKeyX, GamepadKeyY,
		GamepadKeyRShoulder, GamepadKeyLShoulder, GamepadKeyRTrigger, GamepadKeyLTrigger:
		return true
	}
	return false
}

// StickPosition is the digital direction of a button stick (d-pad or lever),
// each axis in {-1, 0, 1}.
type StickPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Neutral reports whether the stick is centered.
func (p StickPosition) Neutral() bool {
	return p.X == 0 && p.Y == 0
}

// StickFromRaw normalizes a raw signed 16-bit axis pair to [-1, 1].
func StickFromRaw(x, y int16) (float64, float64) {
	return float64(x) / 32768, float64(y) / 32768
}
