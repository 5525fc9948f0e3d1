package assert

import (
	"fmt"
	"io"
	"strings"
)

// Check describes a single assertion.
//
// Compare is true for a comparison between two expressions, and false for a single boolean evaluation checked against Value2.
// ExpectEqual is true when the assertion succeeds for equal values, and false when it succeeds for values that differ.
type Check struct {
	Compare     bool
	ExpectEqual bool
	Fatal       bool
	Value1      any
	Value2      any
	Text1       string // Text1 is the literal source text of the first expression.
	Text2       string // Text2 is the literal source text of the second expression.
	File        string
	Line        int
	Name        string // Name is the name of the enclosing test, and may be empty.
}

// Succeeds reports whether the Check passes, given whether its values are equal.
func (c Check) Succeeds(equal bool) bool {
	if c.ExpectEqual {
		return equal
	}
	return !equal
}

// Diagnostic renders the failure line for this Check, without a trailing newline.
func (c Check) Diagnostic() string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s:%d", ShortFile(c.File), c.Line))
	if len(c.Name) > 0 {
		buf.WriteString(" in Test(" + c.Name + ")")
	}
	buf.WriteString(" Assert Failed: ")
	if c.Compare {
		op := "=="
		if !c.ExpectEqual {
			op = "!="
		}
		buf.WriteString(fmt.Sprintf(`compare {%s} %s {%s} got {"%s"} %s {"%s"}`,
			c.Text1, op, c.Text2, Render(c.Value1), op, Render(c.Value2)))
	} else {
		buf.WriteString(fmt.Sprintf("evaluate {%s} == %s", c.Text1, Render(c.Value2)))
	}
	return buf.String()
}

// Evaluate writes the diagnostic for c to out if it doesn't succeed, and returns whether it succeeded.
// A successful Check produces no output.
//
// If c is fatal and fails, then a [*FatalError] is returned as well.
// It's up to the caller to stop running code when that happens; Evaluate never exits the process itself.
func Evaluate(out io.Writer, c Check, equal bool) (bool, error) {
	if c.Succeeds(equal) {
		return true, nil
	}
	_, _ = fmt.Fprintln(out, c.Diagnostic())
	if c.Fatal {
		return false, &FatalError{File: ShortFile(c.File), Line: c.Line, Name: c.Name}
	}
	return false, nil
}

// Render produces the default textual representation of a value used in diagnostics.
// Booleans are rendered as words.
func Render(v any) string {
	return fmt.Sprintf("%v", v)
}

// ShortFile strips everything up to and including the last '/' or '\\' in path.
// A path without a separator is returned unchanged.
func ShortFile(path string) string {
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
