package protocol

import "math"

// Pointer coordinates travel as signed 1/16 units, trackball values and
// precisions as 1/100 units.
const (
	pointerScale   = 16
	trackballScale = 100
)

func putUint16(b []byte, v uint16) {
	b[0] = byte((v >> 8) & 0xff)
	b[1] = byte(v & 0xff)
}

func getUint16(b []byte) uint16 {
	return (uint16(b[0])<<8)&0xff00 | uint16(b[1])
}

func putUint32(b []byte, v uint32) {
	b[0] = byte((v >> 24) & 0xff)
	b[1] = byte((v >> 16) & 0xff)
	b[2] = byte((v >> 8) & 0xff)
	b[3] = byte(v & 0xff)
}

func getUint32(b []byte) uint32 {
	return (uint32(b[0])<<24)&0xff000000 |
		(uint32(b[1])<<16)&0xff0000 |
		(uint32(b[2])<<8)&0xff00 |
		uint32(b[3])
}

func toFixed32(v float64, scale float64) uint32 {
	return uint32(int32(math.Round(v * scale)))
}

func fromFixed32(v uint32, scale float64) float64 {
	return float64(int32(v)) / scale
}

func toFixed16(v float64, scale float64) uint16 {
	f := math.Round(v * scale)
	f = max(min(f, math.MaxInt16), math.MinInt16)
	return uint16(int16(f))
}

func fromFixed16(v uint16, scale float64) float64 {
	return float64(int16(v)) / scale
}
