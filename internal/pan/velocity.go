package pan

import "time"

const (
	velocitySamples = 20
	// Samples older than this, relative to the newest one, are ignored.
	velocityHorizon = 100 * time.Millisecond
)

type velocitySample struct {
	t    time.Time
	x, y float64
}

// velocityTracker estimates pointer velocity from a fixed ring of recent
// positions. The estimate is the slope of a least-squares line through the
// samples within velocityHorizon of the newest one, fitted per axis.
type velocityTracker struct {
	ring [velocitySamples]velocitySample
	head int // next write position
	n    int
}

func (v *velocityTracker) reset() {
	*v = velocityTracker{}
}

func (v *velocityTracker) add(t time.Time, x, y float64) {
	v.ring[v.head] = velocitySample{t: t, x: x, y: y}
	v.head = (v.head + 1) % velocitySamples
	if v.n < velocitySamples {
		v.n++
	}
}

// at returns the i-th oldest retained sample.
func (v *velocityTracker) at(i int) velocitySample {
	start := v.head - v.n
	if start < 0 {
		start += velocitySamples
	}
	return v.ring[(start+i)%velocitySamples]
}

// velocity returns the estimated velocity in units per second.
func (v *velocityTracker) velocity() (vx, vy float64) {
	if v.n < 2 {
		return 0, 0
	}
	newest := v.at(v.n - 1)

	// Times and positions are taken relative to the newest sample to keep the
	// sums small; the slope does not depend on the origin.
	var st, sx, sy, stt, stx, sty float64
	m := 0
	for i := v.n - 1; i >= 0; i-- {
		s := v.at(i)
		age := newest.t.Sub(s.t)
		if age < 0 || age > velocityHorizon {
			break
		}
		t := -age.Seconds()
		x := s.x - newest.x
		y := s.y - newest.y
		st += t
		sx += x
		sy += y
		stt += t * t
		stx += t * x
		sty += t * y
		m++
	}
	if m < 2 {
		return 0, 0
	}
	fm := float64(m)
	den := fm*stt - st*st
	if den == 0 {
		return 0, 0
	}
	vx = (fm*stx - st*sx) / den
	vy = (fm*sty - st*sy) / den
	return vx, vy
}
