package pso

type options struct {
	logger   *Logger
	progress ProgressFunc
	observer StepObserver
	metrics  MetricsCollector
}

// Option configures a Solver.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithProgress installs the receiver of progress events.
// Events are only emitted when Settings.PrintEvery > 0.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithObserver installs a hook called after every update step.
func WithObserver(fn StepObserver) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithMetrics sets the metrics collector. A nil collector disables metrics.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
