// Package program provides the Exercise and Program domain entities.
package program

import "github.com/cockroachdb/errors"

// Errors
var (
	ErrEmptyProgram        = errors.New("program has no exercises")
	ErrInvalidExerciseData = errors.New("invalid exercise data")
)

// ExerciseType represents how an exercise is completed.
type ExerciseType int

const (
	Timed          ExerciseType = iota // Completed when its timer runs out
	RepetitionOnly                     // Completed by explicit user action (no timer)
	Combined                           // Timed and repetition-counted together
)

// String returns the string representation of the exercise type.
func (t ExerciseType) String() string {
	switch t {
	case Timed:
		return "timed"
	case RepetitionOnly:
		return "repetition_only"
	case Combined:
		return "combined"
	default:
		return "unknown"
	}
}

// HasTimer reports whether exercises of this type count down on a clock.
func (t ExerciseType) HasTimer() bool {
	return t == Timed || t == Combined
}

// Exercise represents one unit of a practice program.
type Exercise struct {
	Name                string       // Display name
	Type                ExerciseType // Completion mode
	DurationSeconds     int          // Timer length; first-side duration when bilateral
	Repetitions         int          // Rep count (repetition_only/combined)
	HasSides            bool         // Performed once per side (timed/combined only)
	SideDurationSeconds int          // Second-side duration; 0 falls back to DurationSeconds
	RestAfterSeconds    int          // Rest inserted after the exercise completes
}

// Bilateral reports whether the exercise is played once per side.
// Repetition-only exercises are never split into explicit sides; the
// practitioner alternates within the single rep count.
func (e Exercise) Bilateral() bool {
	return e.HasSides && e.Type.HasTimer()
}

// SecondSideDuration resolves the duration of the second side, falling back
// to the first side's duration when no override is set. Callers resolve this
// at side-switch time rather than baking it into the model at load time.
func (e Exercise) SecondSideDuration() int {
	if e.SideDurationSeconds > 0 {
		return e.SideDurationSeconds
	}
	return e.DurationSeconds
}

// TimedSeconds returns the total scheduled timer seconds for the exercise,
// covering both sides when bilateral. Zero for repetition-only exercises.
func (e Exercise) TimedSeconds() int {
	if !e.Type.HasTimer() {
		return 0
	}
	if e.Bilateral() {
		return e.DurationSeconds + e.SecondSideDuration()
	}
	return e.DurationSeconds
}

// Program is an ordered, non-empty sequence of exercises.
// Insertion order is playback order.
type Program struct {
	Name      string
	Exercises []Exercise
}

// Len returns the number of exercises in the program.
func (p *Program) Len() int {
	return len(p.Exercises)
}

// Validate checks the whole program up front so that data problems surface
// before a session starts rather than mid-session.
func (p *Program) Validate() error {
	if len(p.Exercises) == 0 {
		return ErrEmptyProgram
	}

	for i, e := range p.Exercises {
		switch e.Type {
		case Timed, Combined:
			if e.DurationSeconds <= 0 {
				return errors.Wrapf(ErrInvalidExerciseData,
					"exercise %d (%s): %s exercise requires a positive duration", i, e.Name, e.Type)
			}
		case RepetitionOnly:
			if e.Repetitions <= 0 {
				return errors.Wrapf(ErrInvalidExerciseData,
					"exercise %d (%s): repetition-only exercise requires positive repetitions", i, e.Name)
			}
		default:
			return errors.Wrapf(ErrInvalidExerciseData,
				"exercise %d (%s): unknown exercise type %d", i, e.Name, int(e.Type))
		}

		if e.Repetitions < 0 {
			return errors.Wrapf(ErrInvalidExerciseData,
				"exercise %d (%s): repetitions must not be negative", i, e.Name)
		}
		if e.SideDurationSeconds < 0 {
			return errors.Wrapf(ErrInvalidExerciseData,
				"exercise %d (%s): side duration must not be negative", i, e.Name)
		}
		if e.RestAfterSeconds < 0 {
			return errors.Wrapf(ErrInvalidExerciseData,
				"exercise %d (%s): rest duration must not be negative", i, e.Name)
		}
	}

	return nil
}

// TotalScheduledSeconds returns the scheduled length of the program: all
// timer segments plus all rests. Repetition-only exercises contribute only
// their rest, since their active time depends on the practitioner.
func (p *Program) TotalScheduledSeconds() int {
	var total int
	for _, e := range p.Exercises {
		total += e.TimedSeconds() + e.RestAfterSeconds
	}
	return total
}
