// Package obslog wires the terrain generator into zerolog the same way
// tw-backend/internal/logging wires HTTP handlers into it: a configured
// global logger plus a per-run identifier threaded through every log line.
package obslog

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger is the package-level logger, configured by Init.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the global logger's output and time format.
// Safe to call multiple times; the last call wins.
func Init(pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if pretty {
		Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// RunLogger returns a child logger tagged with a fresh run id, so every
// line emitted during one Generate call can be correlated the way
// tw-backend tags a request with its correlation id.
func RunLogger() (zerolog.Logger, string) {
	runID := uuid.New().String()
	return Logger.With().Str("run_id", runID).Logger(), runID
}

// StageTimer accumulates per-stage elapsed time for the single summary
// line emitted at the end of a run.
type StageTimer struct {
	log    zerolog.Logger
	start  time.Time
	stages []stageElapsed
}

type stageElapsed struct {
	Name    string
	Elapsed time.Duration
}

// NewStageTimer begins timing a run against the given logger.
func NewStageTimer(log zerolog.Logger) *StageTimer {
	return &StageTimer{log: log, start: time.Now()}
}

// Stage times fn and records its elapsed duration under name.
func (t *StageTimer) Stage(name string, fn func()) {
	begin := time.Now()
	t.log.Debug().Str("stage", name).Msg("stage started")
	fn()
	elapsed := time.Since(begin)
	t.stages = append(t.stages, stageElapsed{Name: name, Elapsed: elapsed})
	t.log.Debug().Str("stage", name).Dur("elapsed", elapsed).Msg("stage completed")
}

// Summary logs one line with the total elapsed time and each stage's
// contribution, mirroring the request-completed log line in
// tw-backend/internal/logging.Middleware.
func (t *StageTimer) Summary() {
	event := t.log.Info().Dur("total_elapsed", time.Since(t.start))
	for _, s := range t.stages {
		event = event.Dur(s.Name, s.Elapsed)
	}
	event.Msg("generation completed")
}
