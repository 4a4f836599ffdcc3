package protocol

import (
	"errors"
	"fmt"
	"math"
)

type clientMessageType uint8

const (
	press clientMessageType = iota
	move
	release
	cancel
	key
	trackball
	resize
	center
)

type ClientMessage interface {
	Encode() []byte
	decode([]byte) error
}

func DecodeClientMessage(b []byte) (ClientMessage, error) {
	if len(b) == 0 {
		return nil, errors.New("empty client message")
	}
	var msg ClientMessage
	switch clientMessageType(b[0]) {
	case press, move, release:
		msg = &Pointer{}
	case cancel:
		msg = &Cancel{}
	case key:
		msg = &Key{}
	case trackball:
		msg = &Trackball{}
	case resize:
		msg = &Resize{}
	case center:
		msg = &Center{}
	default:
		return nil, fmt.Errorf("unknown client message type: %d", b[0])
	}
	err := msg.decode(b)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

type PointerAction uint8

const (
	Press PointerAction = iota
	Move
	Release
)

// Pointer is a touch or primary button event in viewport coordinates. Time
// is in milliseconds since the session started.
type Pointer struct {
	Action PointerAction
	X, Y   float64
	Time   uint32
}

func (p *Pointer) Encode() []byte {
	b := make([]byte, 13)
	switch p.Action {
	case Move:
		b[0] = byte(move)
	case Release:
		b[0] = byte(release)
	default:
		b[0] = byte(press)
	}
	putUint32(b[1:], toFixed32(p.X, pointerScale))
	putUint32(b[5:], toFixed32(p.Y, pointerScale))
	putUint32(b[9:], p.Time)
	return b
}

func (p *Pointer) decode(b []byte) error {
	if len(b) < 13 {
		return errors.New("[Pointer] too short")
	}
	switch clientMessageType(b[0]) {
	case move:
		p.Action = Move
	case release:
		p.Action = Release
	default:
		p.Action = Press
	}
	p.X = fromFixed32(getUint32(b[1:]), pointerScale)
	p.Y = fromFixed32(getUint32(b[5:]), pointerScale)
	p.Time = getUint32(b[9:])
	return nil
}

// Cancel aborts the current touch session.
type Cancel struct{}

func (c *Cancel) Encode() []byte {
	return []byte{byte(cancel)}
}

func (c *Cancel) decode(b []byte) error {
	return nil
}

type KeyCode uint8

const (
	ArrowUp KeyCode = iota + 1
	ArrowDown
	ArrowLeft
	ArrowRight
)

type Key struct {
	Code KeyCode
	Down bool
	Time uint32
}

func (k *Key) Encode() []byte {
	b := make([]byte, 7)
	b[0] = byte(key)
	b[1] = byte(k.Code)
	if k.Down {
		b[2] = 1
	}
	putUint32(b[3:], k.Time)
	return b
}

func (k *Key) decode(b []byte) error {
	if len(b) < 7 {
		return errors.New("[Key] too short")
	}
	k.Code = KeyCode(b[1])
	k.Down = b[2] == 1
	k.Time = getUint32(b[3:])
	return nil
}

// Trackball is a relative motion from a trackball or a wheel.
type Trackball struct {
	X, Y      float64
	Precision float64
}

func (t *Trackball) Encode() []byte {
	b := make([]byte, 7)
	b[0] = byte(trackball)
	putUint16(b[1:], toFixed16(t.X, trackballScale))
	putUint16(b[3:], toFixed16(t.Y, trackballScale))
	putUint16(b[5:], uint16(math.Round(max(min(t.Precision*trackballScale, math.MaxUint16), 0))))
	return b
}

func (t *Trackball) decode(b []byte) error {
	if len(b) < 7 {
		return errors.New("[Trackball] too short")
	}
	t.X = fromFixed16(getUint16(b[1:]), trackballScale)
	t.Y = fromFixed16(getUint16(b[3:]), trackballScale)
	t.Precision = float64(getUint16(b[5:])) / trackballScale
	return nil
}

type Resize struct {
	Width, Height uint16
}

func (r *Resize) Encode() []byte {
	b := make([]byte, 5)
	b[0] = byte(resize)
	putUint16(b[1:], r.Width)
	putUint16(b[3:], r.Height)
	return b
}

func (r *Resize) decode(b []byte) error {
	if len(b) < 5 {
		return errors.New("[Resize] too short")
	}
	r.Width = getUint16(b[1:])
	r.Height = getUint16(b[3:])
	return nil
}

// Center asks for the viewport to be centred on a content coordinate.
type Center struct {
	X, Y uint32
}

func (c *Center) Encode() []byte {
	b := make([]byte, 9)
	b[0] = byte(center)
	putUint32(b[1:], c.X)
	putUint32(b[5:], c.Y)
	return b
}

func (c *Center) decode(b []byte) error {
	if len(b) < 9 {
		return errors.New("[Center] too short")
	}
	c.X = getUint32(b[1:])
	c.Y = getUint32(b[5:])
	return nil
}
