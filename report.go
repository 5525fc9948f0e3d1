package unit

import (
	"github.com/google/uuid"
	"github.com/saylorsolutions/unit/assert"
	"time"
)

// Outcome is the result of running a single test.
type Outcome struct {
	Name     string
	Location Location
	Failures int           // Failures is the number of failed non-fatal assertions in this run.
	Panicked bool          // Panicked is true if the test raised a panic that wasn't a fatal assertion.
	Message  string        // Message is the panic message, if there was one.
	Fatal    bool          // Fatal is true if a fatal assertion failed, stopping the run.
	Duration time.Duration
}

// Passed reports whether the test had no failures of any kind.
func (o Outcome) Passed() bool {
	return o.Failures == 0 && !o.Panicked && !o.Fatal
}

// Report is the result of [Registry.Run].
type Report struct {
	ID       uuid.UUID // ID identifies the run in logs.
	Outcomes []Outcome
	Duration time.Duration
}

// Passed is true if every test passed, which includes the case of no tests at all.
func (r *Report) Passed() bool {
	for _, o := range r.Outcomes {
		if !o.Passed() {
			return false
		}
	}
	return true
}

// Total returns the number of tests that were run.
func (r *Report) Total() int {
	return len(r.Outcomes)
}

// Failed returns the number of tests that didn't pass.
func (r *Report) Failed() int {
	var failed int
	for _, o := range r.Outcomes {
		if !o.Passed() {
			failed++
		}
	}
	return failed
}

// Err returns an error describing every test that didn't pass, or nil if they all did.
func (r *Report) Err() error {
	errs := assert.CollectErrors()
	for _, o := range r.Outcomes {
		switch {
		case o.Fatal:
			errs.AddString("%s Test(%s): %w", o.Location, o.Name, assert.ErrFatal)
		case o.Panicked:
			errs.AddString("%s Test(%s): uncaught panic: %s", o.Location, o.Name, o.Message)
		case o.Failures > 0:
			errs.AddString("%s Test(%s): %d failed assertion(s)", o.Location, o.Name, o.Failures)
		}
	}
	return errs.Result()
}
