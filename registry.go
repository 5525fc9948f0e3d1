package unit

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/saylorsolutions/unit/assert"
	"github.com/saylorsolutions/unit/slogx"
	"io"
	"log/slog"
	"os"
	"time"
)

// ErrFatal is returned from [Registry.Run] when a fatal assertion fails.
var ErrFatal = assert.ErrFatal

// Registry is an ordered collection of tests, and the driver that runs them.
//
// Tests are expected to be registered before the registry is run, and a Registry isn't safe for concurrent use.
type Registry struct {
	tests     []*T
	printer   *Printer
	log       *slog.Logger
	slow      time.Duration
	observers []*Observer
}

// NewRegistry creates an empty [Registry] that writes to STDERR and discards logs unless configured otherwise.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		printer: NewPrinter(),
		log:     slogx.Discard(),
	}
	r.Configure(opts...)
	return r
}

// Configure applies options to an existing [Registry].
func (r *Registry) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

// Observe adds an [Observer] that stays until the returned function is called.
// Calling remove more than once has no further effect.
func (r *Registry) Observe(obs Observer) (remove func()) {
	if obs == nil {
		panic("nil observer")
	}
	entry := &obs
	r.observers = append(r.observers, entry)
	return func() {
		for i, o := range r.observers {
			if o == entry {
				r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

// Output returns the writer used for driver diagnostics.
func (r *Registry) Output() io.Writer {
	return r.printer.Writer()
}

// Test declares a test with the caller's file and line, and registers it.
// The returned [T] is mostly useful for inspecting results after a run.
//
// Passing a nil body will panic.
func (r *Registry) Test(name string, body TestFunc) *T {
	file, line := callerOf(1)
	return r.Add(name, file, line, body)
}

// Add is like [Registry.Test], but with an explicit source location.
// The file is shortened with [assert.ShortFile].
func (r *Registry) Add(name, file string, line int, body TestFunc) *T {
	if body == nil {
		panic("nil test body")
	}
	t := &T{
		name: name,
		loc:  Location{File: assert.ShortFile(file), Line: line},
		body: body,
		reg:  r,
	}
	r.tests = append(r.tests, t)
	return t
}

// Tests returns the registered tests in registration order.
func (r *Registry) Tests() []*T {
	tests := make([]*T, len(r.tests))
	copy(tests, r.tests)
	return tests
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	return len(r.tests)
}

// Run runs every registered test once, in registration order.
//
// A panic raised by a test is reported to the registry's output, the test is treated as failed, and the run moves on to the next test.
// A failed fatal assertion stops the run immediately, and the returned error will match [assert.ErrFatal].
// The [Report] is returned either way, covering every test that was started.
func (r *Registry) Run() (*Report, error) {
	report := &Report{
		ID:       uuid.New(),
		Outcomes: make([]Outcome, 0, len(r.tests)),
	}
	log := r.log.With("run", report.ID.String())
	log.Debug("Starting test run", "tests", len(r.tests))
	start := time.Now()
	for _, t := range r.tests {
		outcome := r.runTest(log, t)
		report.Outcomes = append(report.Outcomes, outcome)
		for _, obs := range r.observers {
			(*obs)(outcome)
		}
		if outcome.Fatal {
			report.Duration = time.Since(start)
			log.Error("Test run stopped by a fatal assertion", "test", t.name, "location", t.loc.String())
			return report, fmt.Errorf("test run stopped: %w", t.fatal)
		}
	}
	report.Duration = time.Since(start)
	log.Debug("Finished test run", "passed", report.Passed(), "failed", report.Failed(), "duration", report.Duration)
	return report, nil
}

func (r *Registry) runTest(log *slog.Logger, t *T) (outcome Outcome) {
	t.log = log.With("test", t.name, "location", t.loc.String())
	outcome = Outcome{Name: t.name, Location: t.loc}
	t.log.Debug("Running test")
	t.fatal = nil
	// The failure count isn't reset between runs, so only this run's failures are reported.
	before := t.failures
	start := time.Now()
	defer func() {
		outcome.Duration = time.Since(start)
		// Only this test's own signal stops the run. A FatalError from anywhere else is just a panic.
		if v := recover(); v != nil && (t.fatal == nil || v != any(t.fatal)) {
			r.reportPanic(t, v, &outcome)
		}
		outcome.Failures = t.failures - before
		outcome.Fatal = t.fatal != nil
		if r.slow > 0 && outcome.Duration > r.slow {
			t.log.Warn("Slow test", "duration", outcome.Duration, "threshold", r.slow)
		}
		t.log.Debug("Finished test", "failures", outcome.Failures, "duration", outcome.Duration)
	}()
	t.Run()
	return outcome
}

func (r *Registry) reportPanic(t *T, v any, outcome *Outcome) {
	outcome.Panicked = true
	msg, ok := panicMessage(v)
	outcome.Message = msg
	if ok {
		r.printer.Printf("%s Test(%s) raised an uncaught panic with message %s\n", t.loc, t.name, msg)
	} else {
		r.printer.Printf("%s Test(%s) raised an uncaught panic\n", t.loc, t.name)
	}
	t.log.Error("Uncaught panic in test", "panic", v)
}

func panicMessage(v any) (string, bool) {
	switch val := v.(type) {
	case error:
		return val.Error(), true
	case string:
		return val, true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

var exit = os.Exit

// RunTests runs every registered test, and returns true if they all passed.
// If a fatal assertion fails, then the process exits with status 1 and nothing else runs.
// Use [Registry.Run] to decide what to do about that instead.
func (r *Registry) RunTests() bool {
	report, err := r.Run()
	if err != nil {
		exit(1)
		return false
	}
	return report.Passed()
}
