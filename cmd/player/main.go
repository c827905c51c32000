// Package main provides the practice player entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/practicebox/practicebox/internal/app/clock"
	"github.com/practicebox/practicebox/internal/app/player"
	"github.com/practicebox/practicebox/internal/app/progress"
	"github.com/practicebox/practicebox/internal/domain/program"
	"github.com/practicebox/practicebox/internal/infra/config"
	"github.com/practicebox/practicebox/internal/infra/cuesink"
	"github.com/practicebox/practicebox/internal/infra/logger"
	"github.com/practicebox/practicebox/internal/infra/progfile"
)

var (
	app        = kingpin.New("practicebox", "practicebox guided practice session player")
	configPath = app.Flag("config", "Path to config file").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	startCmd     = app.Command("start", "Play a practice program (default)").Default()
	startProgram = startCmd.Arg("program", "Path to program file").String()

	validateCmd     = app.Command("validate", "Validate a program file and exit")
	validateProgram = validateCmd.Arg("program", "Path to program file").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Load config
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger; command-line flags win over config
	loggerConfig := logger.Config{
		Output: cfg.Logging.Output,
		Level:  cfg.Logging.Level,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case validateCmd.FullCommand():
		validate(*validateProgram)
	case startCmd.FullCommand():
		if err := run(cfg, *startProgram); err != nil {
			zlog.Error().Msgf("player error: %v", err)
			os.Exit(1)
		}
	}
}

// validate checks a program file and prints a short summary.
func validate(path string) {
	p, err := progfile.Load(path)
	if err != nil {
		zlog.Fatal().Msgf("program invalid: %v", err)
	}
	fmt.Printf("program ok: %s: %d exercises, %s scheduled\n",
		p.Name, p.Len(), formatClock(p.TotalScheduledSeconds()))
}

func run(cfg *config.Config, path string) error {
	if path == "" {
		path = cfg.Session.ProgramPath
	}
	if path == "" {
		return fmt.Errorf("no program file given (argument or session.program_path)")
	}

	p, err := progfile.Load(path)
	if err != nil {
		return err
	}

	sinks := cfg.Cues.Sinks
	if len(sinks) == 0 {
		sinks = []config.SinkConfig{{
			Type:     "terminal",
			Settings: map[string]any{"bell": true},
		}}
	}
	dispatcher, err := cuesink.FromConfig(sinks)
	if err != nil {
		return err
	}

	broadcaster := progress.NewBroadcaster()
	defer broadcaster.Close()
	_, updates := broadcaster.Subscribe(16)

	engine, err := player.Start(p, player.Config{
		CountdownSeconds:    cfg.Playback.CountdownSeconds,
		HalfTimeLeadSeconds: cfg.Playback.HalfTimeLeadSeconds,
		SkipCrossesRest:     cfg.SkipCrossesRest(),
	}, dispatcher, broadcaster)
	if err != nil {
		return err
	}

	runner := clock.New(engine, time.Duration(cfg.Playback.TickIntervalMs)*time.Millisecond)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zlog.Info().Msgf("starting session: program=%s exercises=%d", p.Name, p.Len())
	fmt.Println("commands: [p]ause [r]esume [s]kip [q]uit")

	runner.Start(ctx)
	go render(updates)
	go readCommands(runner)

	<-runner.Done()
	printOutcome(p, runner.Outcome())
	return nil
}

// render prints a progress line per update, overwriting the previous line.
func render(updates <-chan progress.Update) {
	for u := range updates {
		fmt.Printf("\r\033[K%s", formatSnapshot(u.Snapshot))
	}
}

// readCommands maps stdin lines to runner commands.
func readCommands(runner *clock.Runner) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p", "pause":
			runner.Pause()
		case "r", "resume":
			runner.Resume()
		case "s", "skip":
			runner.Skip()
		case "q", "quit", "exit":
			runner.Exit()
			return
		case "":
		default:
			zlog.Warn().Msgf("unknown command: %s", scanner.Text())
		}
	}
}

// formatSnapshot renders one progress line, e.g.
// "[3/7] lunges (side 2/2) 00:12 remaining".
func formatSnapshot(s player.Snapshot) string {
	var line string
	switch s.Phase {
	case player.PhaseCountdown:
		line = fmt.Sprintf("starting in %s", formatClock(s.RemainingSeconds))
	case player.PhaseExercising:
		line = fmt.Sprintf("[%d/%d] %s", s.ExerciseIndex+1, s.ExerciseCount, s.ExerciseName)
		if s.Side != player.SideNone {
			line += fmt.Sprintf(" (side %d/2)", int(s.Side))
		}
		if s.Repetitions > 0 {
			line += fmt.Sprintf(" x%d reps", s.Repetitions)
		}
		if s.RemainingSeconds > 0 {
			line += fmt.Sprintf(" %s remaining", formatClock(s.RemainingSeconds))
		}
	case player.PhaseResting:
		line = fmt.Sprintf("[%d/%d] rest %s", s.ExerciseIndex+1, s.ExerciseCount,
			formatClock(s.RemainingSeconds))
	case player.PhaseCompleted:
		line = "session complete"
	case player.PhaseEnded:
		line = "session ended"
	}
	if s.Paused {
		line += " [paused]"
	}
	return line
}

// printOutcome prints the per-exercise completion record.
func printOutcome(p *program.Program, o player.Outcome) {
	verdict := "ended early"
	if o.Finished() {
		verdict = "finished"
	}
	fmt.Printf("\nsession %s: %d/%d exercises completed\n",
		verdict, o.CompletedCount(), len(o.Statuses))
	for i, s := range o.Statuses {
		fmt.Printf("  %2d. %-24s %s\n", i+1, p.Exercises[i].Name, s)
	}
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
