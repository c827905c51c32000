package player

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/practicebox/practicebox/internal/app/cue"
	"github.com/practicebox/practicebox/internal/domain/program"
)

// Feeding the same sequence of ticks and commands to a freshly-started
// engine always yields the same cues, snapshots, and outcome.
func TestEngine_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numExercises := rapid.IntRange(1, 5).Draw(rt, "numExercises")
		exercises := make([]program.Exercise, numExercises)
		for i := range exercises {
			switch rapid.IntRange(0, 2).Draw(rt, "type") {
			case 0:
				exercises[i] = program.Exercise{
					Name: "timed", Type: program.Timed,
					DurationSeconds:  rapid.IntRange(1, 12).Draw(rt, "duration"),
					HasSides:         rapid.Bool().Draw(rt, "hasSides"),
					RestAfterSeconds: rapid.IntRange(0, 5).Draw(rt, "rest"),
				}
			case 1:
				exercises[i] = program.Exercise{
					Name: "reps", Type: program.RepetitionOnly,
					Repetitions:      rapid.IntRange(1, 20).Draw(rt, "reps"),
					RestAfterSeconds: rapid.IntRange(0, 5).Draw(rt, "rest"),
				}
			case 2:
				exercises[i] = program.Exercise{
					Name: "combined", Type: program.Combined,
					DurationSeconds:     rapid.IntRange(1, 12).Draw(rt, "duration"),
					Repetitions:         rapid.IntRange(1, 20).Draw(rt, "reps"),
					HasSides:            rapid.Bool().Draw(rt, "hasSides"),
					SideDurationSeconds: rapid.IntRange(0, 12).Draw(rt, "sideDuration"),
					RestAfterSeconds:    rapid.IntRange(0, 5).Draw(rt, "rest"),
				}
			}
		}

		// 0=tick 1=pause 2=resume 3=skip 4=exit
		script := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 80).Draw(rt, "script")

		run := func() ([]cue.Cue, []Snapshot, Outcome) {
			rec := &cue.Recorder{}
			var snaps []Snapshot
			reporter := ReporterFunc(func(s Snapshot) { snaps = append(snaps, s) })

			p := &program.Program{Name: "prop", Exercises: exercises}
			e, err := Start(p, DefaultConfig(), rec, reporter)
			require.NoError(rt, err)

			for _, op := range script {
				switch op {
				case 0:
					e.AdvanceOneSecond()
				case 1:
					e.Pause()
				case 2:
					e.Resume()
				case 3:
					e.Skip()
				case 4:
					e.Exit()
				}
			}
			return rec.Cues, snaps, e.Outcome()
		}

		cues1, snaps1, outcome1 := run()
		cues2, snaps2, outcome2 := run()

		require.Equal(rt, cues1, cues2)
		require.Equal(rt, snaps1, snaps2)
		require.Equal(rt, outcome1.Phase, outcome2.Phase)
		require.Equal(rt, outcome1.Statuses, outcome2.Statuses)
	})
}

// The half-time gate fires at most once per segment regardless of the
// tick/command interleaving.
func TestEngine_HalfTimeFiresOncePerSegment(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		duration := rapid.IntRange(5, 30).Draw(rt, "duration")
		hasSides := rapid.Bool().Draw(rt, "hasSides")

		rec := &cue.Recorder{}
		p := &program.Program{Exercises: []program.Exercise{{
			Name: "timed", Type: program.Timed,
			DurationSeconds: duration, HasSides: hasSides,
			RestAfterSeconds: rapid.IntRange(0, 5).Draw(rt, "rest"),
		}}}
		e, err := Start(p, DefaultConfig(), rec, nil)
		require.NoError(rt, err)

		segments := 1
		if hasSides {
			segments = 2
		}

		// Enough ticks to run the whole session, with pauses sprinkled in
		for i := 0; i < DefaultConfig().CountdownSeconds+2*duration+10; i++ {
			if rapid.Bool().Draw(rt, "pause") {
				e.Pause()
				e.Resume()
			}
			e.AdvanceOneSecond()
		}

		require.Equal(rt, PhaseCompleted, e.Snapshot().Phase)
		require.LessOrEqual(rt, rec.Count(cue.HalfTime), segments)
		require.Equal(rt, 1, rec.Count(cue.SessionFinished))
	})
}
