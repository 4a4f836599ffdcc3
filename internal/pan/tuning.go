package pan

import "time"

// Tuning holds the constants that shape how input turns into scrolling.
// Distances and speeds are in content units, the same units the host uses
// for pointer coordinates.
type Tuning struct {
	// SnapEnabled turns on axis snapping for nearly horizontal or vertical drags.
	SnapEnabled bool
	// SlopeFactor is how many times larger one axis delta must be than the
	// other for the drag to count as axis aligned.
	SlopeFactor float64
	// SnapBreakDistance is the perpendicular delta above which a snap
	// candidate is dropped.
	SnapBreakDistance int
	// SnapLockReverseDistance is how far a drag must move against its initial
	// direction to lock the snap axis.
	SnapLockReverseDistance int

	// FlingWindow is the longest pause between the last move and the release
	// that still produces a fling. Velocity is measured over the last 100ms of
	// samples only, so a release that comes later than that inside the window
	// measures zero velocity and does not fling either.
	FlingWindow time.Duration
	// FlingVelocityScale multiplies the measured release velocity.
	FlingVelocityScale float64
	// FlingStopVelocity is the speed, in units per second, below which a fling
	// axis comes to rest.
	FlingStopVelocity float64

	// KeyMinSpeed is the step of the first key repeat.
	KeyMinSpeed int
	// KeyMaxSpeed caps the step of a held key.
	KeyMaxSpeed int
	// KeyAccelDelay is how often the step of a held key grows.
	KeyAccelDelay time.Duration
	// KeyAccelStep is how much the step grows each KeyAccelDelay.
	KeyAccelStep int

	// TrackballScale multiplies trackball axis values after device precision.
	TrackballScale float64
}

// DefaultTuning returns the tuning of the stock map view.
func DefaultTuning() Tuning {
	return Tuning{
		SnapEnabled:             false,
		SlopeFactor:             1.5,
		SnapBreakDistance:       20,
		SnapLockReverseDistance: 0,
		FlingWindow:             250 * time.Millisecond,
		FlingVelocityScale:      0.5,
		FlingStopVelocity:       1,
		KeyMinSpeed:             2,
		KeyMaxSpeed:             20,
		KeyAccelDelay:           100 * time.Millisecond,
		KeyAccelStep:            2,
		TrackballScale:          10,
	}
}
