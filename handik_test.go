package handik_test

import (
	"testing"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newEngine(t *testing.T, opts ...handik.Option) *handik.Engine {
	t.Helper()
	eng, err := handik.New(opts...)
	require.NoError(t, err)
	return eng
}

// settle runs enough frames for any cooldown and blend to finish.
func settle(eng *handik.Engine) {
	for i := 0; i < 4; i++ {
		eng.Update(0.125)
	}
}

func TestEngine_StartsOnKeyboard(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, domain.TargetKeyboard, eng.LeftTargetType())
	assert.Equal(t, domain.TargetKeyboard, eng.RightTargetType())
	assert.Equal(t, domain.DefaultModes(), eng.Modes())
}

func TestEngine_SinkReceivesBothHands(t *testing.T) {
	var committed []domain.Hand
	eng := newEngine(t, handik.WithTargetSink(domain.TargetSinkFunc(func(h domain.Hand, _ domain.Pose) {
		committed = append(committed, h)
	})))

	left, right := eng.Update(0.125)

	assert.Equal(t, []domain.Hand{domain.HandLeft, domain.HandRight}, committed)
	assert.Equal(t, left, eng.Pose(domain.HandLeft))
	assert.Equal(t, right, eng.Pose(domain.HandRight))
}

func TestEngine_MouseTakesRightHand(t *testing.T) {
	eng := newEngine(t)
	settle(eng)

	assert.True(t, eng.MoveMouse(r3.Vec{X: 0.1, Y: 0.2}))
	eng.Update(0.125)

	assert.Equal(t, domain.TargetMouse, eng.RightTargetType())
	assert.Equal(t, domain.TargetKeyboard, eng.LeftTargetType())
	st := eng.State()
	assert.Equal(t, domain.TargetMouse, st.Right.Target)
	assert.True(t, st.Right.Blending)
	assert.Greater(t, st.Right.Cooldown, 0.0)
}

func TestEngine_DiscreteTriggersTakeHandWithinCooldown(t *testing.T) {
	eng := newEngine(t)
	settle(eng)

	require.True(t, eng.MoveMouse(r3.Vec{X: 0.1, Y: 0.2}))
	eng.Update(0.016)
	require.Equal(t, domain.TargetMouse, eng.RightTargetType())

	tests := []struct {
		name  string
		press func() bool
		want  domain.TargetType
	}{
		{"gamepad button", func() bool { return eng.GamepadButtonDown(input.GamepadKeyA) }, domain.TargetGamepad},
		{"key", func() bool { return eng.KeyDown("j") }, domain.TargetKeyboard},
		{"midi note", func() bool { return eng.NoteOn(72) }, domain.TargetMidiController},
	}
	for _, tt := range tests {
		require.Greater(t, eng.State().Right.Cooldown, 0.0, tt.name)
		assert.True(t, tt.press(), tt.name)
		eng.Update(0.016)
		assert.Equal(t, tt.want, eng.RightTargetType(), tt.name)
	}

	// Continuous input stays gated.
	assert.False(t, eng.MoveMouse(r3.Vec{X: 0.3}))
	eng.Update(0.016)
	assert.Equal(t, domain.TargetMidiController, eng.RightTargetType())
}

func TestEngine_WordToMotion(t *testing.T) {
	var motions []string
	eng := newEngine(t,
		handik.WithClips(motion.Clip{Name: "wave", Length: 2}),
		handik.WithWordMotions(map[string]string{"hi": "wave"}),
		handik.WithLifecycleHooks(domain.LifecycleHooks{
			OnMotion: func(e *domain.MotionEvent) { motions = append(motions, e.Clip+"/"+e.Source) },
		}),
	)

	eng.KeyDown("h")
	eng.KeyDown("i")
	assert.Empty(t, motions, "clips need a loaded avatar")

	eng.OnAvatarLoaded()
	eng.KeyDown("h")
	assert.True(t, eng.KeyDown("i"), "typing still drives the hands")

	assert.Equal(t, []string{"wave/keyboard"}, motions)
	assert.Equal(t, "wave", eng.State().Motion.Clip)
}

func TestEngine_GamepadWordToMotionBlocksBody(t *testing.T) {
	var motions []string
	eng := newEngine(t,
		handik.WithClips(motion.Clip{Name: "bow", Length: 1.5}),
		handik.WithClipSlots("bow"),
		handik.WithLifecycleHooks(domain.LifecycleHooks{
			OnMotion: func(e *domain.MotionEvent) { motions = append(motions, e.Clip) },
		}),
	)
	eng.OnAvatarLoaded()
	require.True(t, eng.SetWordToMotionDevice(int(domain.WordToMotionGamepad)))

	assert.False(t, eng.GamepadButtonDown(input.GamepadKeyA))
	assert.Equal(t, []string{"bow"}, motions)
	settle(eng)
	assert.False(t, eng.IsLeftHandGripGamepad())
}

func TestEngine_MotionRepository(t *testing.T) {
	repo := motion.NewRepository(t.TempDir())
	eng := newEngine(t, handik.WithMotionRepository(repo))

	assert.False(t, eng.PlayMotion("spin"), "repository not loaded")
	assert.Empty(t, eng.State().Playing)
}

func TestEngine_FeedSwitchesToImageTracking(t *testing.T) {
	eng := newEngine(t)
	settle(eng)

	eng.Feed(domain.HandLeft, domain.Pose{Position: r3.Vec{Y: 1}, Rotation: domain.IdentityRotation})
	eng.Update(0.125)

	assert.Equal(t, domain.TargetImageBaseHand, eng.LeftTargetType())
	assert.Equal(t, domain.TargetKeyboard, eng.RightTargetType())
}

func TestEngine_SnapshotRestore(t *testing.T) {
	eng := newEngine(t)
	require.True(t, eng.SetAlwaysHandDown(true))
	snap := eng.Snapshot("alice")

	other := newEngine(t)
	assert.True(t, other.RestoreModes(snap))
	assert.Equal(t, eng.Modes(), other.Modes())
	assert.Equal(t, "alice", snap.ProfileID)
}
