package engine

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/JackWithOneEye/metroview/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) Tuning() pan.Tuning {
	return pan.DefaultTuning()
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestEngine(t *testing.T) (*engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := &metromap.Map{Name: "test", Width: 2000, Height: 1000}
	e := newEngine(testConfig{}, m, context.Background(), clock.Now)
	return e, clock
}

func nextFrame(t *testing.T, e *engine) protocol.Frame {
	t.Helper()
	var f protocol.Frame
	select {
	case b := <-e.Output():
		require.NoError(t, f.Decode(b))
	default:
		require.FailNow(t, "no frame available")
	}
	return f
}

func submit(t *testing.T, e *engine, msg interface{ Encode() []byte }) protocol.Frame {
	t.Helper()
	require.NoError(t, e.SubmitMessage(msg.Encode()))
	return nextFrame(t, e)
}

func TestInitialFrame(t *testing.T) {
	e, _ := newTestEngine(t)
	f := nextFrame(t, e)
	assert.Equal(t, uint32(2000), f.ContentWidth)
	assert.Equal(t, uint32(1000), f.ContentHeight)
	assert.True(t, f.Ready)
	assert.False(t, f.Flinging)
	assert.Equal(t, uint8(pan.PhaseIdle), f.Phase)
}

func TestEmptyMapIsNotReady(t *testing.T) {
	e := newEngine(testConfig{}, &metromap.Map{}, context.Background(), time.Now)
	f := nextFrame(t, e)
	assert.False(t, f.Ready)
}

func TestDragAndFling(t *testing.T) {
	e, clock := newTestEngine(t)
	nextFrame(t, e)

	f := submit(t, e, &protocol.Resize{Width: 400, Height: 300})
	assert.Equal(t, uint16(400), f.ViewportWidth)
	assert.Equal(t, uint16(300), f.ViewportHeight)

	f = submit(t, e, &protocol.Pointer{Action: protocol.Press, X: 200, Y: 150, Time: 0})
	assert.Equal(t, uint8(pan.PhaseInit), f.Phase)

	f = submit(t, e, &protocol.Pointer{Action: protocol.Move, X: 100, Y: 150, Time: 16})
	assert.Equal(t, uint8(pan.PhaseDrag), f.Phase)
	assert.Equal(t, uint32(100), f.OffsetX)
	assert.Equal(t, uint32(0), f.OffsetY)

	f = submit(t, e, &protocol.Pointer{Action: protocol.Release, X: 100, Y: 150, Time: 32})
	assert.Equal(t, uint8(pan.PhaseDone), f.Phase)
	require.True(t, f.Flinging)

	clock.now = clock.now.Add(5 * time.Second)
	e.tick()
	f = nextFrame(t, e)
	assert.False(t, f.Flinging)
	assert.Greater(t, f.OffsetX, uint32(100))
	assert.LessOrEqual(t, f.OffsetX, uint32(1600))
	assert.Equal(t, uint32(0), f.OffsetY)

	// nothing to do without a fling
	e.tick()
	assert.Empty(t, e.Output())
}

func TestPressCatchesFling(t *testing.T) {
	e, _ := newTestEngine(t)
	nextFrame(t, e)
	submit(t, e, &protocol.Resize{Width: 400, Height: 300})
	submit(t, e, &protocol.Pointer{Action: protocol.Press, X: 200, Y: 150, Time: 0})
	submit(t, e, &protocol.Pointer{Action: protocol.Move, X: 100, Y: 150, Time: 16})
	f := submit(t, e, &protocol.Pointer{Action: protocol.Release, X: 100, Y: 150, Time: 32})
	require.True(t, f.Flinging)

	f = submit(t, e, &protocol.Pointer{Action: protocol.Press, X: 100, Y: 150, Time: 40})
	assert.False(t, f.Flinging)
	assert.Equal(t, uint8(pan.PhaseDragStart), f.Phase)

	f = submit(t, e, &protocol.Cancel{})
	assert.Equal(t, uint8(pan.PhaseIdle), f.Phase)
}

func TestKeysAndTrackball(t *testing.T) {
	e, _ := newTestEngine(t)
	nextFrame(t, e)
	submit(t, e, &protocol.Resize{Width: 400, Height: 300})

	f := submit(t, e, &protocol.Key{Code: protocol.ArrowRight, Down: true, Time: 0})
	assert.Equal(t, uint32(pan.DefaultTuning().KeyMinSpeed), f.OffsetX)

	f = submit(t, e, &protocol.Key{Code: protocol.ArrowRight, Down: false})
	assert.Equal(t, uint32(pan.DefaultTuning().KeyMinSpeed), f.OffsetX)

	f = submit(t, e, &protocol.Trackball{X: 0, Y: 3, Precision: 1})
	assert.Equal(t, uint32(3*pan.DefaultTuning().TrackballScale), f.OffsetY)
}

func TestUnsupportedKey(t *testing.T) {
	e, _ := newTestEngine(t)
	nextFrame(t, e)
	err := e.SubmitMessage((&protocol.Key{Code: 9, Down: true}).Encode())
	assert.ErrorContains(t, err, "unsupported key")
	assert.Empty(t, e.Output())
}

func TestDecodeError(t *testing.T) {
	e, _ := newTestEngine(t)
	nextFrame(t, e)
	assert.Error(t, e.SubmitMessage(nil))
	assert.Error(t, e.SubmitMessage([]byte{0xff}))
}

func TestCenter(t *testing.T) {
	e, _ := newTestEngine(t)
	nextFrame(t, e)
	submit(t, e, &protocol.Resize{Width: 400, Height: 300})

	f := submit(t, e, &protocol.Center{X: 1000, Y: 500})
	assert.Equal(t, uint32(800), f.OffsetX)
	assert.Equal(t, uint32(350), f.OffsetY)
	assert.Equal(t, image.Pt(1000, 500), e.Center())

	e.SetCenter(image.Pt(0, 0))
	f = nextFrame(t, e)
	assert.Equal(t, uint32(0), f.OffsetX)
	assert.Equal(t, uint32(0), f.OffsetY)
	assert.Equal(t, image.Pt(200, 150), e.Center())
}

func TestDropsFramesWhenOutputIsFull(t *testing.T) {
	e, _ := newTestEngine(t)
	for range 5 {
		require.NoError(t, e.SubmitMessage((&protocol.Resize{Width: 10, Height: 10}).Encode()))
	}
	assert.Len(t, e.Output(), 2)
}

func TestStartClosesOutputOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine(testConfig{}, &metromap.Map{Width: 10, Height: 10}, ctx)
	done := make(chan struct{})
	go func() {
		e.Start()
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "engine did not stop")
	}
	<-e.Output()
	_, ok := <-e.Output()
	assert.False(t, ok)
}

func TestInputAfterStopIsIgnored(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine(testConfig{}, &metromap.Map{Width: 100, Height: 100}, ctx)
	done := make(chan struct{})
	go func() {
		e.Start()
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "engine did not stop")
	}
	for range e.Output() {
	}

	assert.NotPanics(t, func() {
		err := e.SubmitMessage((&protocol.Resize{Width: 10, Height: 10}).Encode())
		assert.NoError(t, err)
	})
	assert.NotPanics(t, func() {
		e.SetCenter(image.Pt(50, 50))
	})
	assert.Equal(t, image.Pt(50, 50), e.Center())
}
