package pan

import "time"

// Key is a directional key that scrolls the surface.
type Key uint8

const (
	ArrowUp Key = iota + 1
	ArrowDown
	ArrowLeft
	ArrowRight
)

func (k Key) arrow() bool {
	return k >= ArrowUp && k <= ArrowRight
}

type keyScroll struct {
	active    bool
	speed     int
	lastAccel time.Time
}

// KeyDown scrolls one step for a pressed or repeating arrow key. Holding the
// key speeds the scroll up. It reports whether the key was handled.
func (s *Surface) KeyDown(k Key, t time.Time) bool {
	if !k.arrow() {
		return false
	}
	ks := &s.keys
	if !ks.active {
		ks.active = true
		ks.speed = s.tuning.KeyMinSpeed
		ks.lastAccel = t
	}
	if ks.speed < s.tuning.KeyMaxSpeed && t.Sub(ks.lastAccel) > s.tuning.KeyAccelDelay {
		ks.speed = min(ks.speed+s.tuning.KeyAccelStep, s.tuning.KeyMaxSpeed)
		ks.lastAccel = t
	}

	var dx, dy int
	switch k {
	case ArrowLeft:
		dx = -ks.speed
	case ArrowRight:
		dx = ks.speed
	case ArrowUp:
		dy = -ks.speed
	case ArrowDown:
		dy = ks.speed
	}
	s.scrollBy(dx, dy)
	return true
}

// KeyUp ends key acceleration.
func (s *Surface) KeyUp(k Key) bool {
	if !k.arrow() {
		return false
	}
	s.keys = keyScroll{}
	return true
}

// KeySpeed returns the step the next arrow key repeat would scroll by, or
// zero when no arrow key is held.
func (s *Surface) KeySpeed() int {
	if !s.keys.active {
		return 0
	}
	return s.keys.speed
}

// Trackball scrolls by a relative trackball or wheel motion. precisionX and
// precisionY convert the device's axis values to content units.
func (s *Surface) Trackball(x, y, precisionX, precisionY float64) {
	scale := s.tuning.TrackballScale
	s.scrollBy(int(x*precisionX*scale), int(y*precisionY*scale))
}
