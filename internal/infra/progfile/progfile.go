// Package progfile loads practice programs from YAML files.
package progfile

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/practicebox/practicebox/internal/domain/program"
)

// fileProgram mirrors the on-disk program document.
type fileProgram struct {
	Name      string         `yaml:"name"`
	Exercises []fileExercise `yaml:"exercises"`
}

// fileExercise mirrors one exercise entry.
type fileExercise struct {
	Name                string `yaml:"name"`
	Type                string `yaml:"type"`
	DurationSeconds     int    `yaml:"duration_seconds"`
	Repetitions         int    `yaml:"repetitions"`
	HasSides            bool   `yaml:"has_sides"`
	SideDurationSeconds int    `yaml:"side_duration_seconds"`
	RestAfterSeconds    int    `yaml:"rest_after_seconds"`
}

// Load reads and parses a program file, returning a validated program.
func Load(path string) (*program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read program file")
	}
	return Parse(data)
}

// Parse parses a YAML program document and validates the resulting program
// so data problems surface before a session starts.
func Parse(data []byte) (*program.Program, error) {
	var fp fileProgram
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return nil, errors.Wrap(err, "failed to parse program file")
	}

	p := &program.Program{
		Name:      fp.Name,
		Exercises: make([]program.Exercise, 0, len(fp.Exercises)),
	}
	for i, fe := range fp.Exercises {
		t, err := parseType(fe.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "exercise %d (%s)", i, fe.Name)
		}
		p.Exercises = append(p.Exercises, program.Exercise{
			Name:                fe.Name,
			Type:                t,
			DurationSeconds:     fe.DurationSeconds,
			Repetitions:         fe.Repetitions,
			HasSides:            fe.HasSides,
			SideDurationSeconds: fe.SideDurationSeconds,
			RestAfterSeconds:    fe.RestAfterSeconds,
		})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseType maps the file-level type string to the domain exercise type.
func parseType(s string) (program.ExerciseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timed":
		return program.Timed, nil
	case "repetition_only", "reps":
		return program.RepetitionOnly, nil
	case "combined":
		return program.Combined, nil
	default:
		return 0, errors.Wrapf(program.ErrInvalidExerciseData, "unknown exercise type %q", s)
	}
}
