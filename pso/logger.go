package pso

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pso-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithRun tags every record with a run identifier.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run", id)}
}

// LogRunStart logs the configuration a run starts with.
func (l *Logger) LogRunStart(ctx context.Context, s *Settings) {
	l.DebugContext(ctx, "run started",
		"dim", s.Dim,
		"size", s.Size,
		"steps", s.Steps,
		"goal", s.Goal,
		"neighborhood", s.Neighborhood.String(),
		"inertia", s.Inertia.String(),
		"boundary", s.Boundary.String(),
	)
}

// LogImprovement logs a new global best.
func (l *Logger) LogImprovement(ctx context.Context, step int, fitness float64) {
	l.DebugContext(ctx, "global best improved",
		"step", step,
		"fitness", fitness,
	)
}

// LogRunEnd logs how a run terminated.
func (l *Logger) LogRunEnd(ctx context.Context, res *Result, err error) {
	if err != nil {
		l.WarnContext(ctx, "run stopped",
			"state", res.State.String(),
			"steps", res.Steps,
			"fitness", res.Fitness,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run finished",
		"state", res.State.String(),
		"steps", res.Steps,
		"evaluations", res.Evaluations,
		"fitness", res.Fitness,
		"duration", res.Duration.Round(time.Microsecond),
	)
}
