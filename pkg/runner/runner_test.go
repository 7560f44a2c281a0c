package runner_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) CommitTarget(h domain.Hand, p domain.Pose) {
	m.Called(h, p)
}

func newEngine(t *testing.T, opts ...handik.Option) *handik.Engine {
	t.Helper()
	eng, err := handik.New(opts...)
	require.NoError(t, err)
	return eng
}

func TestRunner_StepCommitsFrame(t *testing.T) {
	sink := new(mockSink)
	sink.On("CommitTarget", domain.HandLeft, mock.Anything).Once()
	sink.On("CommitTarget", domain.HandRight, mock.Anything).Once()

	var hooked []uint64
	r := runner.New(newEngine(t, handik.WithTargetSink(sink)),
		runner.WithFrameHook(func(s runner.FrameSnapshot) { hooked = append(hooked, s.Frame) }),
	)
	assert.Zero(t, r.Snapshot().Frame)

	r.Step(0.125)

	sink.AssertExpectations(t)
	snap := r.Snapshot()
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Equal(t, 0.125, snap.Dt)
	assert.Equal(t, domain.TargetKeyboard, snap.State.Left.Target)
	assert.Equal(t, []uint64{1}, hooked)
}

func TestRunner_SubmitRunsBeforeNextFrame(t *testing.T) {
	r := runner.New(newEngine(t))
	r.Step(0.125)
	r.Step(0.125)
	r.Step(0.125)

	errc := make(chan error, 1)
	go func() {
		errc <- r.Submit(context.Background(), func(e *handik.Engine) {
			e.SetKeyboardAndMouseMotionMode(int(domain.KeyboardAndMousePresentation))
		})
	}()

	require.Eventually(t, func() bool {
		r.Step(0.125)
		return r.Snapshot().State.Modes.KeyboardAndMouse == domain.KeyboardAndMousePresentation
	}, time.Second, time.Millisecond)
	assert.NoError(t, <-errc)
}

func TestRunner_RunAndStop(t *testing.T) {
	r := runner.New(newEngine(t), runner.WithFPS(200))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, r.Submit(ctx, func(e *handik.Engine) { e.SetAlwaysHandDown(true) }))
	require.Eventually(t, func() bool {
		return r.Snapshot().State.Modes.AlwaysHandDown
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	err := r.Submit(context.Background(), func(*handik.Engine) {})
	assert.ErrorIs(t, err, domain.ErrRunnerStopped)
	assert.ErrorIs(t, r.Run(context.Background()), runner.ErrAlreadyRunning)
}

func TestRunner_WaitCoversTheLastFrame(t *testing.T) {
	inFrame := make(chan struct{}, 1)
	release := make(chan struct{})
	var once sync.Once
	r := runner.New(newEngine(t), runner.WithFPS(200), runner.WithFrameHook(func(runner.FrameSnapshot) {
		once.Do(func() {
			inFrame <- struct{}{}
			<-release
		})
	}))
	assert.NoError(t, r.Wait(context.Background()), "never started")

	go func() { _ = r.Run(context.Background()) }()
	<-inFrame
	r.Stop()

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(short), context.DeadlineExceeded, "a frame is still running")

	close(release)
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRunner_SubmitHonoursContext(t *testing.T) {
	r := runner.New(newEngine(t), runner.WithInboxSize(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Submit(ctx, func(*handik.Engine) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_MaxDelta(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	var deltas []float64
	r := runner.New(newEngine(t),
		runner.WithFPS(500),
		runner.WithMaxDelta(50*time.Millisecond),
		runner.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
		runner.WithFrameHook(func(s runner.FrameSnapshot) { deltas = append(deltas, s.Dt) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	require.Eventually(t, func() bool { return r.Snapshot().Frame >= 2 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.NotEmpty(t, deltas)
	assert.Equal(t, 0.05, deltas[0])
}
