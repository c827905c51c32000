// Package player implements the guided practice session state machine.
package player

// Phase represents the session lifecycle phase.
type Phase int

const (
	PhaseCountdown  Phase = iota // Opening countdown before the first exercise
	PhaseExercising              // An exercise segment is active
	PhaseResting                 // Rest interval between exercises
	PhaseCompleted               // All exercises finished naturally
	PhaseEnded                   // Session ended early by the caller
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseExercising:
		return "exercising"
	case PhaseResting:
		return "resting"
	case PhaseCompleted:
		return "completed"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase accepts no further time advancement.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseEnded
}

// Side identifies which side of a bilateral exercise is active.
// Meaningful only while exercising an exercise that has sides.
type Side int

const (
	SideNone Side = iota
	SideFirst
	SideSecond
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SideFirst:
		return "first"
	case SideSecond:
		return "second"
	default:
		return "unknown"
	}
}
