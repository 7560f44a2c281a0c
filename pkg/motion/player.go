package motion

import (
	"github.com/aretw0/handik/pkg/blend"
)

const (
	// DefaultClip is the standing clip played between motions.
	DefaultClip = "Default"
	// CrossFadeDuration is the fade back to DefaultClip, in seconds.
	CrossFadeDuration = 0.5
)

// Clip is a built-in animation clip.
type Clip struct {
	Name   string  `json:"name" yaml:"name"`
	Length float64 `json:"length" yaml:"length"`
}

// PlayerState is what the player is showing this frame.
type PlayerState struct {
	Clip string `json:"clip"`
	// From is the clip being faded out, empty when no fade is running.
	From string `json:"from,omitempty"`
	// Weight of Clip over From, eased.
	Weight float64 `json:"weight"`
}

// Player plays built-in clips and returns to DefaultClip after each one.
// It is driven by Tick on the frame loop instead of timers.
type Player struct {
	clips  map[string]Clip
	loaded bool

	current string
	from    string
	fade    float64
	fadeFor float64

	// resetIn counts down to the fade back to DefaultClip; zero means none pending.
	resetIn float64

	previewing bool
	preview    string
}

func NewPlayer(clips []Clip) *Player {
	p := &Player{clips: make(map[string]Clip, len(clips))}
	for _, c := range clips {
		p.clips[c.Name] = c
	}
	return p
}

// OnAvatarLoaded starts the default clip.
func (p *Player) OnAvatarLoaded() {
	p.loaded = true
	p.current, p.from = DefaultClip, ""
	p.resetIn = 0
}

// OnAvatarUnloaded drops any playback. Play is ignored until the next load.
func (p *Player) OnAvatarUnloaded() {
	p.loaded = false
	p.previewing, p.preview = false, ""
	p.resetIn = 0
}

// CanPlay reports whether name is a known built-in clip.
func (p *Player) CanPlay(name string) bool {
	_, ok := p.clips[name]
	return ok
}

// Play starts a clip from the beginning and returns how long the motion
// holds before fading out. It returns 0 when nothing was played.
func (p *Player) Play(name string) float64 {
	if !p.loaded {
		return 0
	}
	clip, ok := p.clips[name]
	if !ok {
		return 0
	}

	p.current, p.from = clip.Name, ""
	p.resetIn = clip.Length
	return clip.Length - CrossFadeDuration
}

// PlayPreview loops a clip until StopPreview. Repeating the running preview
// is a no-op.
func (p *Player) PlayPreview(name string) {
	if !p.loaded || (p.previewing && name == p.preview) {
		return
	}
	if !p.CanPlay(name) {
		return
	}
	p.previewing = true
	p.preview = name
	p.current, p.from = name, ""
	p.resetIn = 0
}

// StopPreview cuts straight back to the default clip.
func (p *Player) StopPreview() {
	if !p.previewing {
		p.preview = ""
		return
	}
	p.previewing, p.preview = false, ""
	p.crossFade(DefaultClip, 0)
}

// Abort cancels the pending return and fades to the default clip now.
func (p *Player) Abort() {
	p.resetIn = 0
	p.crossFade(DefaultClip, CrossFadeDuration)
}

func (p *Player) crossFade(to string, duration float64) {
	if duration <= 0 {
		p.current, p.from = to, ""
		return
	}
	p.from, p.current = p.current, to
	p.fade, p.fadeFor = 0, duration
}

// Tick advances the running fade and then the pending return. A fade
// started by this tick begins at weight zero.
func (p *Player) Tick(dt float64) {
	if p.from != "" {
		p.fade += dt
		if p.fade >= p.fadeFor {
			p.from = ""
		}
	}
	if p.resetIn > 0 {
		p.resetIn -= dt
		if p.resetIn <= 0 {
			p.resetIn = 0
			p.crossFade(DefaultClip, CrossFadeDuration)
		}
	}
}

// IsPlaying reports whether a preview is running.
func (p *Player) IsPlaying() bool { return p.previewing }

// State returns the clip on screen and the fade weight.
func (p *Player) State() PlayerState {
	if p.from == "" {
		return PlayerState{Clip: p.current, Weight: 1}
	}
	return PlayerState{Clip: p.current, From: p.from, Weight: blend.Ease(p.fade / p.fadeFor)}
}
