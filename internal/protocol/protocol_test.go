package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePointer(t *testing.T) {
	p := &Pointer{Action: Release, X: 12.5, Y: -3.25, Time: 70000}
	msg, err := DecodeClientMessage(p.Encode())
	require.NoError(t, err)

	got, ok := msg.(*Pointer)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestPointerRoundsToSixteenths(t *testing.T) {
	p := &Pointer{Action: Move, X: 1.0 / 3, Y: 100}
	msg, err := DecodeClientMessage(p.Encode())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, msg.(*Pointer).X, 1.0/32)
	assert.Equal(t, Move, msg.(*Pointer).Action)
}

func TestDecodeTrackballClampsRange(t *testing.T) {
	tb := &Trackball{X: 1000, Y: -0.5, Precision: 1.25}
	msg, err := DecodeClientMessage(tb.Encode())
	require.NoError(t, err)

	got := msg.(*Trackball)
	assert.InDelta(t, 327.67, got.X, 1e-9)
	assert.InDelta(t, -0.5, got.Y, 1e-9)
	assert.InDelta(t, 1.25, got.Precision, 1e-9)
}

func TestDecodeOtherMessages(t *testing.T) {
	msgs := []ClientMessage{
		&Cancel{},
		&Key{Code: ArrowLeft, Down: true, Time: 5},
		&Resize{Width: 640, Height: 480},
		&Center{X: 70000, Y: 3},
	}
	for _, m := range msgs {
		got, err := DecodeClientMessage(m.Encode())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeClientMessage(nil)
	assert.Error(t, err)

	_, err = DecodeClientMessage([]byte{42})
	assert.ErrorContains(t, err, "unknown client message type")

	for _, b := range [][]byte{
		{byte(press), 0, 0},
		{byte(key), 1},
		{byte(trackball), 0, 0, 0},
		{byte(resize), 1},
		{byte(center), 0, 0, 0, 0},
	} {
		_, err = DecodeClientMessage(b)
		assert.ErrorContains(t, err, "too short")
	}
}

func TestFrame(t *testing.T) {
	f := Frame{
		OffsetX:        1 << 20,
		OffsetY:        7,
		ContentWidth:   3000,
		ContentHeight:  2000,
		ViewportWidth:  800,
		ViewportHeight: 600,
		Phase:          2,
		Snap:           3,
		Flinging:       true,
		Ready:          true,
	}
	b := make([]byte, f.EncodeSize())
	f.Encode(b)

	var got Frame
	require.NoError(t, got.Decode(b))
	assert.Equal(t, f, got)

	assert.Error(t, got.Decode(b[:10]))
}
