// Package cuesink builds concrete cue presentation sinks from configuration.
package cuesink

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/practicebox/practicebox/internal/app/cue"
	"github.com/practicebox/practicebox/internal/infra/config"
)

// TerminalSettings represents terminal sink settings.
type TerminalSettings struct {
	Bell    bool `mapstructure:"bell"`
	Verbose bool `mapstructure:"verbose"` // Print a line naming each cue
}

// Terminal presents cues on a terminal: an ASCII bell per cue and,
// when verbose, a line naming it.
type Terminal struct {
	settings TerminalSettings
	out      io.Writer
}

// NewTerminal creates a terminal sink from raw settings.
func NewTerminal(settings map[string]any, out io.Writer) (*Terminal, error) {
	var s TerminalSettings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return nil, errors.Wrap(err, "invalid terminal sink settings")
	}
	if out == nil {
		out = os.Stderr
	}
	return &Terminal{settings: s, out: out}, nil
}

// Dispatch writes the cue to the terminal.
func (t *Terminal) Dispatch(c cue.Cue) {
	if t.settings.Bell {
		fmt.Fprint(t.out, "\a")
	}
	if t.settings.Verbose {
		fmt.Fprintf(t.out, "cue: %s\n", c)
	}
}

// LogSettings represents log sink settings.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Log emits each cue as a structured log record.
type Log struct {
	level zerolog.Level
}

// NewLog creates a log sink from raw settings.
func NewLog(settings map[string]any) (*Log, error) {
	var s LogSettings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return nil, errors.Wrap(err, "invalid log sink settings")
	}
	level := zerolog.InfoLevel
	if s.Level != "" {
		parsed, err := zerolog.ParseLevel(s.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log sink level %q", s.Level)
		}
		level = parsed
	}
	return &Log{level: level}, nil
}

// Dispatch logs the cue.
func (l *Log) Dispatch(c cue.Cue) {
	zlog.WithLevel(l.level).Msgf("cue: %s", c)
}

// FromConfig builds a dispatcher from the configured sink list. An empty
// list yields a no-op dispatcher.
func FromConfig(sinks []config.SinkConfig) (cue.Dispatcher, error) {
	targets := make([]cue.Dispatcher, 0, len(sinks))
	for _, sc := range sinks {
		switch sc.Type {
		case "terminal":
			t, err := NewTerminal(sc.Settings, nil)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		case "log":
			l, err := NewLog(sc.Settings)
			if err != nil {
				return nil, err
			}
			targets = append(targets, l)
		default:
			return nil, errors.Newf("unknown cue sink type: %s", sc.Type)
		}
	}

	switch len(targets) {
	case 0:
		return cue.Nop{}, nil
	case 1:
		return targets[0], nil
	default:
		return cue.NewMultiplexer(targets...), nil
	}
}
