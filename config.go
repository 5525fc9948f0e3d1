package unit

import (
	"github.com/saylorsolutions/unit/env"
	"github.com/saylorsolutions/unit/slogx"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	EnvLogLevel = "LOG_LEVEL" // EnvLogLevel sets the minimum level of run logs, and defaults to "warn".
	EnvSlow     = "SLOW"      // EnvSlow is a duration, and tests taking longer than this are logged as a warning. Zero turns this off.
)

// Config is the environment driven part of a [Registry]'s setup.
type Config struct {
	LogLevel slog.Level
	Slow     time.Duration
}

// ConfigFromEnv reads a [Config] from the environment variables named by [EnvLogLevel] and [EnvSlow], using the [env.Prefix].
func ConfigFromEnv() Config {
	return Config{
		LogLevel: env.Level(EnvLogLevel, slog.LevelWarn),
		Slow:     env.Duration(EnvSlow, 0),
	}
}

// Option configures a [Registry].
type Option func(r *Registry)

// WithOutput redirects driver diagnostics, and assertion failures of tests that haven't called [T.SetOutput].
func WithOutput(w io.Writer) Option {
	return func(r *Registry) {
		r.printer.Redirect(w)
	}
}

// WithLogger sets the logger used for run events.
// Its handler is wrapped with [slogx.Dedupe], so a test adding its own "test" attribute doesn't repeat the key.
// A nil logger discards them.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log == nil {
			r.log = slogx.Discard()
			return
		}
		r.log = slogx.Dedupe(log)
	}
}

// WithSlowThreshold logs a warning for any test that takes longer than d to run.
func WithSlowThreshold(d time.Duration) Option {
	return func(r *Registry) {
		r.slow = d
	}
}

// Observer is called with each test's [Outcome] as soon as the test finishes.
type Observer func(outcome Outcome)

// WithObserver adds an [Observer] to a [Registry] for as long as the registry lives.
// Use [Registry.Observe] for one that can be removed.
// Observers are called in the order they were added, on the same goroutine as the run.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		r.Observe(obs)
	}
}

// WithConfig applies a [Config], logging to STDERR at the configured level.
func WithConfig(conf Config) Option {
	return func(r *Registry) {
		WithLogger(slogx.NewLogger(os.Stderr, conf.LogLevel))(r)
		WithSlowThreshold(conf.Slow)(r)
	}
}
