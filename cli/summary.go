package cli

import (
	"github.com/fatih/color"
	"github.com/saylorsolutions/unit"
	"golang.org/x/term"
	"io"
	"os"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(c *color.Color, enabled bool) *color.Color {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// summarize writes the one line verdict for a run.
// The registered count may be larger than the report's total if the run was stopped early.
func summarize(w io.Writer, report *unit.Report, registered int, stopped, useColor bool) {
	var (
		pass = paint(color.New(color.FgGreen, color.Bold), useColor)
		fail = paint(color.New(color.FgRed, color.Bold), useColor)
	)
	switch {
	case stopped:
		_, _ = fail.Fprintf(w, "FAIL: stopped by a fatal assertion after %d of %d tests (%s)\n", report.Total(), registered, report.Duration)
	case report.Passed():
		_, _ = pass.Fprintf(w, "PASS: %d tests (%s)\n", report.Total(), report.Duration)
	default:
		_, _ = fail.Fprintf(w, "FAIL: %d of %d tests failed (%s)\n", report.Failed(), report.Total(), report.Duration)
	}
}
