package player

// Status describes how far a single exercise got during the session.
type Status int

const (
	StatusPending    Status = iota // Never reached
	StatusInProgress               // Reached but not finished when the session ended
	StatusCompleted                // Fully finished
	StatusSkipped                  // Advanced past by skip before finishing
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is the terminal record of a session, produced at Completed or
// Ended. It carries per-exercise completion status for downstream
// session-record persistence.
type Outcome struct {
	SessionID string
	Phase     Phase    // PhaseCompleted or PhaseEnded once terminal
	Statuses  []Status // One entry per program exercise, in playback order
}

// Finished reports whether every exercise completed naturally.
func (o Outcome) Finished() bool {
	return o.Phase == PhaseCompleted
}

// CompletedCount returns how many exercises were fully finished.
func (o Outcome) CompletedCount() int {
	var n int
	for _, s := range o.Statuses {
		if s == StatusCompleted {
			n++
		}
	}
	return n
}
