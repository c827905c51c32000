// Package cue defines the abstract cue identifiers emitted by the player and
// the dispatcher contract that maps them to a presentation layer.
package cue

// Cue identifies a timing event for an external presentation layer.
// It is a signal, not audio: mapping a cue to a sound, haptic, or
// notification text is the dispatcher's concern.
type Cue int

const (
	CountdownTick   Cue = iota // One second of the opening countdown elapsed
	ExerciseStart              // An exercise or side began
	HalfTime                   // The current segment passed its half-time threshold
	FinalCountdown             // Two seconds remain in the current segment
	SessionFinished            // All exercises completed naturally
)

// String returns the string representation of the cue.
func (c Cue) String() string {
	switch c {
	case CountdownTick:
		return "countdown_tick"
	case ExerciseStart:
		return "exercise_start"
	case HalfTime:
		return "half_time"
	case FinalCountdown:
		return "final_countdown"
	case SessionFinished:
		return "session_finished"
	default:
		return "unknown"
	}
}

// Dispatcher receives cues synchronously as the player fires them.
// Implementations must not block; a collaborator that needs to do blocking
// work in response to a cue must hand off asynchronously itself.
type Dispatcher interface {
	Dispatch(c Cue)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(Cue)

// Dispatch calls f(c).
func (f DispatcherFunc) Dispatch(c Cue) { f(c) }

// Nop is a dispatcher that drops every cue.
type Nop struct{}

// Dispatch does nothing.
func (Nop) Dispatch(Cue) {}

// Multiplexer fans each cue out to several dispatchers in registration order.
type Multiplexer struct {
	targets []Dispatcher
}

// NewMultiplexer creates a multiplexer over the given dispatchers.
func NewMultiplexer(targets ...Dispatcher) *Multiplexer {
	return &Multiplexer{targets: targets}
}

// Dispatch forwards the cue to every target in order.
func (m *Multiplexer) Dispatch(c Cue) {
	for _, t := range m.targets {
		t.Dispatch(c)
	}
}

// Recorder collects dispatched cues, for assertions in tests.
type Recorder struct {
	Cues []Cue
}

// Dispatch appends the cue to the recorded sequence.
func (r *Recorder) Dispatch(c Cue) {
	r.Cues = append(r.Cues, c)
}

// Count returns how many times the given cue was dispatched.
func (r *Recorder) Count(c Cue) int {
	var n int
	for _, got := range r.Cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset clears the recorded sequence.
func (r *Recorder) Reset() {
	r.Cues = nil
}
