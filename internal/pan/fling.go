package pan

import (
	"image"
	"math"
	"time"
)

// flingDecay is k in x”(t) = k·x'(t); the value is the one Android uses.
const flingDecay = -4.2

type flingAxis struct {
	origin float64
	v0     float64
	done   bool
	rest   int
}

// position returns the offset and velocity t seconds after the start.
//
// The acceleration of a point mass with a drag force proportional to its
// velocity is x”(t) = k·x'(t). With x(0) = x0 and x'(0) = v0 that gives
//
//	x(t) = x0 + v0·(e^(k·t) − 1)/k
//	x'(t) = v0·e^(k·t)
func (a *flingAxis) position(t float64) (x, v float64) {
	ekt := math.Exp(flingDecay * t)
	return a.origin + a.v0*(ekt-1)/flingDecay, a.v0 * ekt
}

// step advances the axis to t and returns the pinned integer offset.
func (a *flingAxis) step(t float64, lo, hi int, stop float64) int {
	if a.done {
		return a.rest
	}
	px, v := a.position(t)
	x := int(math.Round(px))
	switch {
	case x <= lo:
		x = lo
		if a.v0 < 0 {
			a.done = true
		}
	case x >= hi:
		x = hi
		if a.v0 > 0 {
			a.done = true
		}
	}
	if math.Abs(v) < stop {
		a.done = true
	}
	a.rest = x
	return x
}

// Fling is a decaying scroll trajectory started by a release.
type Fling struct {
	t0     time.Time
	x, y   flingAxis
	bounds image.Rectangle
	stop   float64
	active bool
	last   image.Point
}

// Start begins a trajectory at origin with the given velocity in units per
// second. bounds is inclusive: offsets equal to bounds.Max are valid. Axes
// whose speed is already below stop do not move.
func (f *Fling) Start(origin image.Point, vx, vy float64, bounds image.Rectangle, stop float64, now time.Time) {
	if stop <= 0 {
		stop = DefaultTuning().FlingStopVelocity
	}
	*f = Fling{
		t0:     now,
		x:      flingAxis{origin: float64(origin.X), v0: vx, rest: origin.X},
		y:      flingAxis{origin: float64(origin.Y), v0: vy, rest: origin.Y},
		bounds: bounds,
		stop:   stop,
		last:   origin,
	}
	f.x.done = math.Abs(vx) < stop
	f.y.done = math.Abs(vy) < stop
	f.active = !(f.x.done && f.y.done)
}

// Active reports whether the trajectory is still moving.
func (f *Fling) Active() bool {
	return f.active
}

// Cancel stops the trajectory where it was last reported.
func (f *Fling) Cancel() {
	f.active = false
}

// Tick returns the offset at now and whether the trajectory has finished.
// Once finished, Tick keeps returning the last reported offset.
func (f *Fling) Tick(now time.Time) (image.Point, bool) {
	if !f.active {
		return f.last, true
	}
	t := now.Sub(f.t0).Seconds()
	if t < 0 {
		t = 0
	}
	f.last = image.Pt(
		f.x.step(t, f.bounds.Min.X, f.bounds.Max.X, f.stop),
		f.y.step(t, f.bounds.Min.Y, f.bounds.Max.Y, f.stop),
	)
	if f.x.done && f.y.done {
		f.active = false
	}
	return f.last, !f.active
}
