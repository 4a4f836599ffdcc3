package protocol

import (
	"errors"
)

const frameSize = 23

const (
	flagFlinging byte = 1 << iota
	flagReady
)

// Frame is the scroll state the server sends after every change.
type Frame struct {
	OffsetX, OffsetY              uint32
	ContentWidth, ContentHeight   uint32
	ViewportWidth, ViewportHeight uint16
	Phase                         uint8
	Snap                          uint8
	Flinging                      bool
	Ready                         bool
}

func (f *Frame) Encode(b []byte) {
	putUint32(b[0:], f.OffsetX)
	putUint32(b[4:], f.OffsetY)
	putUint32(b[8:], f.ContentWidth)
	putUint32(b[12:], f.ContentHeight)
	putUint16(b[16:], f.ViewportWidth)
	putUint16(b[18:], f.ViewportHeight)
	b[20] = f.Phase
	b[21] = f.Snap

	var flags byte
	if f.Flinging {
		flags |= flagFlinging
	}
	if f.Ready {
		flags |= flagReady
	}
	b[22] = flags
}

func (f *Frame) EncodeSize() uint32 {
	return frameSize
}

func (f *Frame) Decode(b []byte) error {
	if len(b) < frameSize {
		return errors.New("too short")
	}
	f.OffsetX = getUint32(b[0:])
	f.OffsetY = getUint32(b[4:])
	f.ContentWidth = getUint32(b[8:])
	f.ContentHeight = getUint32(b[12:])
	f.ViewportWidth = getUint16(b[16:])
	f.ViewportHeight = getUint16(b[18:])
	f.Phase = b[20]
	f.Snap = b[21]
	f.Flinging = b[22]&flagFlinging != 0
	f.Ready = b[22]&flagReady != 0
	return nil
}
