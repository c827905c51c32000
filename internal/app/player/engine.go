package player

import (
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/practicebox/practicebox/internal/app/cue"
	"github.com/practicebox/practicebox/internal/domain/program"
)

// finalCountdownAt is the remaining-seconds value at which the
// final-countdown cue fires in timed and rest segments.
const finalCountdownAt = 2

// Config holds engine policy knobs. The half-time lead and the skip policy
// are configurable rather than hard-coded: both reconstruct product intent
// and may need tuning.
type Config struct {
	CountdownSeconds    int  // Length of the opening countdown
	HalfTimeLeadSeconds int  // Seconds before the segment midpoint that the half-time cue fires
	SkipCrossesRest     bool // Skip advances to the next exercise, never merely into rest
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		CountdownSeconds:    3,
		HalfTimeLeadSeconds: 1,
		SkipCrossesRest:     true,
	}
}

// Engine drives one practice session. All operations are synchronous,
// non-blocking, total functions over the session state; the engine performs
// no I/O and owns no timers. It has no internal locking: the caller must
// serialize ticks and commands through a single writer (see the clock
// package).
type Engine struct {
	id       string
	cfg      Config
	prog     *program.Program
	cues     cue.Dispatcher
	reporter Reporter

	phase                Phase
	index                int
	side                 Side
	remaining            int
	initialPhaseDuration int
	paused               bool
	halfTimeFired        bool

	statuses []Status
}

// Start validates the program and returns an engine positioned at the
// opening countdown. The whole program is checked up front so that data
// problems surface immediately rather than mid-session.
func Start(p *program.Program, cfg Config, cues cue.Dispatcher, reporter Reporter) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cues == nil {
		cues = cue.Nop{}
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = DefaultConfig().CountdownSeconds
	}
	if cfg.HalfTimeLeadSeconds < 0 {
		cfg.HalfTimeLeadSeconds = 0
	}

	e := &Engine{
		id:       uuid.New().String(),
		cfg:      cfg,
		prog:     p,
		cues:     cues,
		reporter: reporter,

		phase:                PhaseCountdown,
		index:                0,
		side:                 SideNone,
		remaining:            cfg.CountdownSeconds,
		initialPhaseDuration: cfg.CountdownSeconds,

		statuses: make([]Status, p.Len()),
	}

	zlog.Debug().Msgf("player: session started: id=%s program=%s exercises=%d countdown=%d",
		e.id, p.Name, p.Len(), cfg.CountdownSeconds)

	e.report()
	return e, nil
}

// ID returns the session ID.
func (e *Engine) ID() string {
	return e.id
}

// Snapshot returns an immutable view of the current session state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:            e.phase,
		ExerciseIndex:    e.index,
		ExerciseCount:    e.prog.Len(),
		Side:             e.side,
		RemainingSeconds: e.remaining,
		Paused:           e.paused,
	}
	if e.index < e.prog.Len() {
		ex := e.prog.Exercises[e.index]
		s.ExerciseName = ex.Name
		s.Repetitions = ex.Repetitions
	}
	return s
}

// Outcome returns the per-exercise completion record. It is meaningful once
// the session is terminal, but callable at any time for mid-session
// inspection.
func (e *Engine) Outcome() Outcome {
	statuses := make([]Status, len(e.statuses))
	copy(statuses, e.statuses)
	return Outcome{
		SessionID: e.id,
		Phase:     e.phase,
		Statuses:  statuses,
	}
}

// AdvanceOneSecond consumes one clock tick. It is the only time-driving
// operation: while paused or terminal it is a no-op.
func (e *Engine) AdvanceOneSecond() Snapshot {
	if e.paused || e.phase.Terminal() {
		return e.Snapshot()
	}

	switch e.phase {
	case PhaseCountdown:
		e.remaining--
		e.cues.Dispatch(cue.CountdownTick)
		if e.remaining <= 0 {
			// The countdown itself already signaled readiness, so the first
			// exercise starts without its own start cue.
			e.enterExercise(0, false)
		}

	case PhaseExercising:
		if !e.current().Type.HasTimer() {
			// Repetition-only exercises have no timer; ticks are accepted as
			// no-ops and completion comes from an explicit skip.
			return e.Snapshot()
		}
		e.remaining--
		e.fireTimingCues()
		if e.remaining <= 0 {
			e.enterNextSegment()
		}

	case PhaseResting:
		e.remaining--
		if e.remaining == finalCountdownAt {
			e.cues.Dispatch(cue.FinalCountdown)
		}
		if e.remaining <= 0 {
			e.finishRest()
		}
	}

	e.report()
	return e.Snapshot()
}

// Skip advances past the current segment. It is total: in any phase it
// either performs the documented jump or does nothing. Skipping is the only
// way to complete a repetition-only exercise.
func (e *Engine) Skip() Snapshot {
	if e.phase.Terminal() {
		return e.Snapshot()
	}

	switch e.phase {
	case PhaseCountdown:
		// Complete the countdown at once and enter exercise 0 with its start
		// cue (an explicit skip, unlike the countdown elapsing naturally).
		e.remaining = 0
		e.enterExercise(0, true)

	case PhaseExercising:
		ex := e.current()
		if ex.Bilateral() && e.side == SideFirst {
			// Same effect as the first side's timer reaching zero.
			e.enterNextSegment()
			break
		}
		if ex.Type.HasTimer() {
			e.statuses[e.index] = StatusSkipped
		} else {
			// Skip is the defined completion signal for repetition-only
			// exercises.
			e.statuses[e.index] = StatusCompleted
		}
		e.remaining = 0
		e.enterRest()
		if e.phase == PhaseResting && e.cfg.SkipCrossesRest {
			e.finishRest()
		}

	case PhaseResting:
		// Treated as the rest timer reaching zero.
		e.finishRest()
	}

	e.report()
	return e.Snapshot()
}

// Pause suspends time advancement. Idempotent. Remaining seconds and
// cue-fired flags are untouched, so a resumed session continues exactly
// where it left off.
func (e *Engine) Pause() Snapshot {
	if e.paused || e.phase.Terminal() {
		return e.Snapshot()
	}
	e.paused = true
	zlog.Debug().Msgf("player: paused: id=%s phase=%s remaining=%d", e.id, e.phase, e.remaining)
	e.report()
	return e.Snapshot()
}

// Resume lifts a pause. Idempotent.
func (e *Engine) Resume() Snapshot {
	if !e.paused || e.phase.Terminal() {
		return e.Snapshot()
	}
	e.paused = false
	zlog.Debug().Msgf("player: resumed: id=%s phase=%s remaining=%d", e.id, e.phase, e.remaining)
	e.report()
	return e.Snapshot()
}

// Exit ends the session early. Safe from any phase and idempotent; once
// terminal no further cues fire and ticks are no-ops. A naturally completed
// session keeps PhaseCompleted.
func (e *Engine) Exit() Outcome {
	if !e.phase.Terminal() {
		e.phase = PhaseEnded
		e.side = SideNone
		e.remaining = 0
		e.paused = false
		zlog.Debug().Msgf("player: session ended early: id=%s completed=%d/%d",
			e.id, e.Outcome().CompletedCount(), e.prog.Len())
		e.report()
	}
	return e.Outcome()
}

func (e *Engine) current() program.Exercise {
	return e.prog.Exercises[e.index]
}

// halfTimeThreshold is the remaining-seconds value at which the half-time
// cue fires: the lead seconds before the segment midpoint, rounded down.
// A 10s segment fires at 6s remaining, a 7s segment at 4s remaining.
func (e *Engine) halfTimeThreshold() int {
	return e.initialPhaseDuration/2 + e.cfg.HalfTimeLeadSeconds
}

// fireTimingCues fires the half-time and final-countdown cues for a timed
// exercising segment. Ordering is fixed: half-time before final-countdown.
func (e *Engine) fireTimingCues() {
	if !e.halfTimeFired && e.remaining == e.halfTimeThreshold() {
		e.halfTimeFired = true
		e.cues.Dispatch(cue.HalfTime)
	}
	if e.remaining == finalCountdownAt {
		e.cues.Dispatch(cue.FinalCountdown)
	}
}

// enterExercise moves the session onto exercise i.
func (e *Engine) enterExercise(i int, fireStart bool) {
	ex := e.prog.Exercises[i]

	e.phase = PhaseExercising
	e.index = i
	e.halfTimeFired = false
	e.statuses[i] = StatusInProgress

	if ex.Bilateral() {
		e.side = SideFirst
	} else {
		e.side = SideNone
	}

	if ex.Type.HasTimer() {
		e.initialPhaseDuration = ex.DurationSeconds
		e.remaining = ex.DurationSeconds
	} else {
		e.initialPhaseDuration = 0
		e.remaining = 0
	}

	if fireStart {
		e.cues.Dispatch(cue.ExerciseStart)
	}

	zlog.Debug().Msgf("player: entering exercise: index=%d name=%s type=%s side=%s duration=%d",
		i, ex.Name, ex.Type, e.side, e.remaining)
}

// enterNextSegment handles a timed exercising segment reaching zero: flip to
// the second side of a bilateral exercise, or move into rest.
func (e *Engine) enterNextSegment() {
	ex := e.current()

	if ex.Bilateral() && e.side == SideFirst {
		e.side = SideSecond
		// The second-side duration is resolved here, not at load time.
		e.initialPhaseDuration = ex.SecondSideDuration()
		e.remaining = e.initialPhaseDuration
		e.halfTimeFired = false
		e.cues.Dispatch(cue.ExerciseStart)
		zlog.Debug().Msgf("player: switching side: index=%d name=%s duration=%d",
			e.index, ex.Name, e.remaining)
		return
	}

	if e.statuses[e.index] == StatusInProgress {
		e.statuses[e.index] = StatusCompleted
	}
	e.enterRest()
}

// enterRest starts the rest phase after the current exercise. A zero-length
// rest completes immediately; the terminal-session check still runs.
func (e *Engine) enterRest() {
	ex := e.current()

	e.phase = PhaseResting
	e.side = SideNone
	e.halfTimeFired = false
	e.initialPhaseDuration = ex.RestAfterSeconds
	e.remaining = ex.RestAfterSeconds

	if e.remaining <= 0 {
		e.finishRest()
	}
}

// finishRest advances past the current exercise's rest: onto the next
// exercise, or to completion when none remains.
func (e *Engine) finishRest() {
	next := e.index + 1
	if next >= e.prog.Len() {
		e.complete()
		return
	}
	e.enterExercise(next, true)
}

func (e *Engine) complete() {
	e.phase = PhaseCompleted
	e.side = SideNone
	e.remaining = 0
	e.cues.Dispatch(cue.SessionFinished)
	zlog.Debug().Msgf("player: session completed: id=%s completed=%d/%d",
		e.id, e.Outcome().CompletedCount(), e.prog.Len())
}

func (e *Engine) report() {
	e.reporter.Report(e.Snapshot())
}
