package motion

import (
	"strconv"
	"strings"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
)

// maxWordLength bounds the typed-word buffer.
const maxWordLength = 32

// Mapper turns input redirected to word-to-motion into clip names.
type Mapper struct {
	// Words maps typed words to clips.
	Words map[string]string
	// Clips is indexed by number keys (1-9 then 0), gamepad buttons and MIDI notes.
	Clips []string

	typed string
}

// Key handles a key press. Letters build words in KeyboardWord mode and
// digits select clips in KeyboardNumber mode.
func (m *Mapper) Key(assign domain.WordToMotionDeviceAssign, key string) (string, bool) {
	k := strings.ToLower(key)
	switch assign {
	case domain.WordToMotionKeyboardWord:
		if len(k) != 1 {
			m.typed = ""
			return "", false
		}
		m.typed += k
		if len(m.typed) > maxWordLength {
			m.typed = m.typed[len(m.typed)-maxWordLength:]
		}
		// The longest matching word wins.
		best, clip := "", ""
		for word, c := range m.Words {
			w := strings.ToLower(word)
			if w != "" && len(w) > len(best) && strings.HasSuffix(m.typed, w) {
				best, clip = w, c
			}
		}
		if best != "" {
			m.typed = ""
			return clip, true
		}
	case domain.WordToMotionKeyboardNumber:
		n, err := strconv.Atoi(k)
		if err != nil || len(k) != 1 {
			return "", false
		}
		// Number row order: 1 is the first clip, 0 the tenth.
		if n == 0 {
			n = 10
		}
		return m.clip(n - 1)
	}
	return "", false
}

// Button selects a clip by gamepad button in Gamepad mode.
func (m *Mapper) Button(assign domain.WordToMotionDeviceAssign, key input.GamepadKey) (string, bool) {
	if assign != domain.WordToMotionGamepad || key == input.GamepadKeyUnknown {
		return "", false
	}
	return m.clip(int(key) - 1)
}

// Note selects a clip by MIDI note in MidiController mode. Notes wrap
// around the clip list.
func (m *Mapper) Note(assign domain.WordToMotionDeviceAssign, note int) (string, bool) {
	if assign != domain.WordToMotionMidiController || note < 0 || len(m.Clips) == 0 {
		return "", false
	}
	return m.clip(note % len(m.Clips))
}

func (m *Mapper) clip(i int) (string, bool) {
	if i < 0 || i >= len(m.Clips) || m.Clips[i] == "" {
		return "", false
	}
	return m.Clips[i], true
}
