package pan

import "fmt"

// Phase is the touch phase of the gesture classifier.
type Phase uint8

const (
	// PhaseIdle means no press has been seen, or the last session was cancelled.
	PhaseIdle Phase = iota
	// PhaseInit is a fresh press that has not moved yet.
	PhaseInit
	// PhaseDrag is a press that has moved at least once.
	PhaseDrag
	// PhaseDragStart is a press that caught a running fling and has not moved yet.
	PhaseDragStart
	// PhaseDone follows a release.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseInit:
		return "Init"
	case PhaseDrag:
		return "Drag"
	case PhaseDragStart:
		return "DragStart"
	case PhaseDone:
		return "Done"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// SnapState restricts a drag to a single axis.
type SnapState uint8

const (
	SnapNone SnapState = iota
	SnapCandidateX
	SnapCandidateY
	SnapLockedX
	SnapLockedY
)

// Horizontal reports whether panning is restricted to the X axis.
func (s SnapState) Horizontal() bool {
	return s == SnapCandidateX || s == SnapLockedX
}

// Vertical reports whether panning is restricted to the Y axis.
func (s SnapState) Vertical() bool {
	return s == SnapCandidateY || s == SnapLockedY
}

// Locked reports whether the axis is fixed for the rest of the touch session.
func (s SnapState) Locked() bool {
	return s == SnapLockedX || s == SnapLockedY
}

func (s SnapState) String() string {
	switch s {
	case SnapNone:
		return "None"
	case SnapCandidateX:
		return "CandidateX"
	case SnapCandidateY:
		return "CandidateY"
	case SnapLockedX:
		return "LockedX"
	case SnapLockedY:
		return "LockedY"
	default:
		return fmt.Sprintf("SnapState(%d)", uint8(s))
	}
}
