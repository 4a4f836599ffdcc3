package pan

import (
	"image"
	"time"
)

// touchSession lives from a press to the matching release or cancel.
type touchSession struct {
	startX, startY float64
	lastX, lastY   float64
	lastTime       time.Time
	tracker        velocityTracker
}

// Press starts a touch session at (x, y) in viewport coordinates. A press
// during a fling stops it; such a press is not reported as a tap when it is
// released without moving.
func (s *Surface) Press(x, y float64, t time.Time) {
	x, y = s.clampPointer(x, y)
	if s.fling.Active() {
		s.fling.Cancel()
		s.phase = PhaseDragStart
		s.logger.Printf("fling caught at %v", s.offset)
	} else {
		s.phase = PhaseInit
	}
	s.snap = SnapNone
	s.snapPositive = false
	s.touch = &touchSession{
		startX:   x,
		startY:   y,
		lastX:    x,
		lastY:    y,
		lastTime: t,
	}
	s.touch.tracker.add(t, x, y)
}

// Move pans by the distance the pointer travelled since the last applied
// move. It does nothing outside a touch session.
func (s *Surface) Move(x, y float64, t time.Time) {
	ts := s.touch
	if ts == nil {
		return
	}
	x, y = s.clampPointer(x, y)
	ts.tracker.add(t, x, y)

	// content moves against the finger
	dx := int(ts.lastX - x)
	dy := int(ts.lastY - y)

	if s.phase != PhaseDrag {
		if s.tuning.SnapEnabled && !s.snap.Locked() {
			s.snap, s.snapPositive = s.snapCandidate(dx, dy)
		}
		s.phase = PhaseDrag
	}

	pinned := s.clamper.Pin(s.offset.Add(image.Pt(dx, dy)))
	dx = pinned.X - s.offset.X
	dy = pinned.Y - s.offset.Y
	if dx == 0 && dy == 0 {
		// Against an edge or below one unit. The last position is kept so
		// the pointer has to come back before the content follows again.
		return
	}

	s.updateSnap(dx, dy)
	switch {
	case s.snap.Horizontal():
		s.scrollBy(dx, 0)
		ts.lastX = x
	case s.snap.Vertical():
		s.scrollBy(0, dy)
		ts.lastY = y
	default:
		s.scrollBy(dx, dy)
		ts.lastX = x
		ts.lastY = y
	}
	ts.lastTime = t
}

// Release ends the touch session. A drag released soon enough after its last
// move starts a fling; a press that never moved is a tap.
func (s *Surface) Release(x, y float64, t time.Time) {
	ts := s.touch
	if ts == nil {
		return
	}
	x, y = s.clampPointer(x, y)
	switch s.phase {
	case PhaseInit:
		if s.onTap != nil {
			s.onTap(s.contentPoint(x, y))
		}
	case PhaseDrag:
		if t.Sub(ts.lastTime) <= s.tuning.FlingWindow {
			ts.tracker.add(t, x, y)
			s.startFling(ts, t)
		}
	}
	s.phase = PhaseDone
	s.touch = nil
}

// Cancel drops the touch session without a tap or a fling.
func (s *Surface) Cancel() {
	s.touch = nil
	s.phase = PhaseIdle
}

func (s *Surface) startFling(ts *touchSession, t time.Time) {
	if !s.ready {
		return
	}
	vx, vy := ts.tracker.velocity()
	switch {
	case s.snap.Horizontal():
		vy = 0
	case s.snap.Vertical():
		vx = 0
	}
	scale := s.tuning.FlingVelocityScale
	vx, vy = -vx*scale, -vy*scale
	s.fling.Start(s.offset, vx, vy, s.clamper.Bounds(), s.tuning.FlingStopVelocity, t)
	if s.fling.Active() {
		s.logger.Printf("fling from %v at (%.0f, %.0f)/s", s.offset, vx, vy)
	}
}

// snapCandidate classifies the first move of a drag.
func (s *Surface) snapCandidate(dx, dy int) (SnapState, bool) {
	ax, ay := float64(abs(dx)), float64(abs(dy))
	switch slope := s.tuning.SlopeFactor; {
	case ax > slope*ay:
		return SnapCandidateX, dx > 0
	case ay > slope*ax:
		return SnapCandidateY, dy > 0
	}
	return SnapNone, false
}

// updateSnap drops a candidate when the drag turns across its axis and locks
// it when the drag reverses along it.
func (s *Surface) updateSnap(dx, dy int) {
	slope := s.tuning.SlopeFactor
	ax, ay := abs(dx), abs(dy)
	switch s.snap {
	case SnapCandidateX:
		if float64(ay) > slope*float64(ax) && ay > s.tuning.SnapBreakDistance {
			s.snap = SnapNone
		}
		if float64(ax) > slope*float64(ay) && s.reversed(dx) {
			s.snap = SnapLockedX
			s.logger.Printf("snap locked to X")
		}
	case SnapCandidateY:
		if float64(ax) > slope*float64(ay) && ax > s.tuning.SnapBreakDistance {
			s.snap = SnapNone
		}
		if float64(ay) > slope*float64(ax) && s.reversed(dy) {
			s.snap = SnapLockedY
			s.logger.Printf("snap locked to Y")
		}
	}
}

func (s *Surface) reversed(d int) bool {
	limit := s.tuning.SnapLockReverseDistance
	if s.snapPositive {
		return d < -limit
	}
	return d > limit
}

// clampPointer keeps pointer coordinates inside the viewport.
func (s *Surface) clampPointer(x, y float64) (float64, float64) {
	vp := s.clamper.Viewport
	if vp.X > 0 {
		x = min(max(x, 0), float64(vp.X-1))
	}
	if vp.Y > 0 {
		y = min(max(y, 0), float64(vp.Y-1))
	}
	return x, y
}

// contentPoint converts a viewport coordinate to content space.
func (s *Surface) contentPoint(x, y float64) image.Point {
	return image.Pt(int(x), int(y)).Add(s.Offset()).Sub(s.Inset())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
