package player

// Snapshot is an immutable view of the session state, handed to the reporter
// after every state mutation. Readers only ever see snapshots, never the
// engine's live state.
type Snapshot struct {
	Phase            Phase
	ExerciseIndex    int
	ExerciseCount    int
	ExerciseName     string
	Repetitions      int // Rep count of the active exercise (0 when untracked)
	Side             Side
	RemainingSeconds int
	Paused           bool
}

// Reporter receives a snapshot after each state mutation, for UI rendering
// and notification updates. Implementations must not block.
type Reporter interface {
	Report(s Snapshot)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Snapshot)

// Report calls f(s).
func (f ReporterFunc) Report(s Snapshot) { f(s) }

type nopReporter struct{}

func (nopReporter) Report(Snapshot) {}
