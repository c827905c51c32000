// Package clock owns the periodic tick source that drives a player engine.
package clock

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/practicebox/practicebox/internal/app/player"
)

// command identifies a user action routed through the run loop.
type command int

const (
	cmdPause command = iota
	cmdResume
	cmdSkip
	cmdExit
)

// Runner drives an engine with one tick per interval. The engine has no
// internal locking, so every tick and command is serialized through the run
// loop: the loop goroutine is the engine's single writer and ticks can never
// overlap a command. A stalled tick source is not compensated for; missed
// wall-clock time never fast-forwards the engine.
type Runner struct {
	engine   *player.Engine
	interval time.Duration
	commands chan command
	done     chan struct{}
	outcome  player.Outcome // Written by the loop before done closes
}

// New creates a runner for the engine. A non-positive interval defaults to
// one second.
func New(engine *player.Engine, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		engine:   engine,
		interval: interval,
		commands: make(chan command, 16),
		done:     make(chan struct{}),
	}
}

// Start launches the run loop. The loop stops when the session reaches a
// terminal phase or the context is cancelled; cancellation exits the session
// early so the outcome is still recorded.
func (r *Runner) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			r.outcome = r.engine.Exit()
			return

		case c := <-r.commands:
			if r.apply(c) {
				return
			}

		case <-ticker.C:
			snap := r.engine.AdvanceOneSecond()
			if snap.Phase.Terminal() {
				r.outcome = r.engine.Outcome()
				return
			}
		}
	}
}

// apply executes one user command against the engine. Returns true when the
// session became terminal.
func (r *Runner) apply(c command) bool {
	switch c {
	case cmdPause:
		r.engine.Pause()
	case cmdResume:
		r.engine.Resume()
	case cmdSkip:
		if snap := r.engine.Skip(); snap.Phase.Terminal() {
			r.outcome = r.engine.Outcome()
			return true
		}
	case cmdExit:
		r.outcome = r.engine.Exit()
		return true
	}
	return false
}

// Pause requests a pause.
func (r *Runner) Pause() { r.post(cmdPause) }

// Resume requests a resume.
func (r *Runner) Resume() { r.post(cmdResume) }

// Skip requests a skip of the current segment.
func (r *Runner) Skip() { r.post(cmdSkip) }

// Exit requests an early end of the session.
func (r *Runner) Exit() { r.post(cmdExit) }

// post hands a command to the run loop. Commands posted after the session
// ended are dropped.
func (r *Runner) post(c command) {
	select {
	case r.commands <- c:
	case <-r.done:
		zlog.Debug().Msgf("clock: dropping command, session already over: command=%d", c)
	}
}

// Done returns a channel that closes when the run loop stops.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Outcome returns the session outcome. Valid once Done is closed.
func (r *Runner) Outcome() player.Outcome {
	return r.outcome
}
