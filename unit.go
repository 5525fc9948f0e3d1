package unit

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/unit/assert"
	"io"
	"log/slog"
)

// TestFunc is the body of a test.
type TestFunc = func(t *T)

// Location is where a test or assertion was declared, using the short file name.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// T is a single registered test case.
// It's only created through a [Registry], so every T is always registered.
//
// A T isn't safe to use from multiple goroutines.
type T struct {
	name     string
	loc      Location
	body     TestFunc
	reg      *Registry
	failures int
	out      io.Writer
	log      *slog.Logger
	fatal    *assert.FatalError
}

// Name returns the name the test was declared with.
func (t *T) Name() string {
	return t.name
}

// Location returns where the test was declared.
func (t *T) Location() Location {
	return t.loc
}

// Failures returns the number of failed non-fatal assertions so far.
func (t *T) Failures() int {
	return t.failures
}

// SetOutput redirects the diagnostics of subsequent assertions in this test.
// Passing nil restores the default, which is the output of the owning [Registry].
func (t *T) SetOutput(w io.Writer) {
	t.out = w
}

// Output returns the writer that assertion failures are currently written to.
func (t *T) Output() io.Writer {
	if t.out != nil {
		return t.out
	}
	return t.reg.Output()
}

// Logger returns a logger with the test's name and location attached.
func (t *T) Logger() *slog.Logger {
	if t.log == nil {
		return t.reg.log.With("test", t.name, "location", t.loc.String())
	}
	return t.log
}

// Run runs the test body once and returns true if any non-fatal assertion failed.
// Panics are not recovered here, that's the job of [Registry.Run].
func (t *T) Run() bool {
	t.body(t)
	return t.failures > 0
}

func (t *T) evaluate(c assert.Check, equal bool) bool {
	c.Name = t.name
	ok, err := assert.Evaluate(t.Output(), c, equal)
	var fatal *assert.FatalError
	if errors.As(err, &fatal) {
		t.fatal = fatal
		panic(fatal)
	}
	if !ok {
		t.failures++
	}
	return ok
}
