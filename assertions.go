package unit

import (
	"github.com/saylorsolutions/unit/assert"
	"runtime"
)

// Eq checks that e1 and e2 are equal, recording a failure if they're not.
func Eq[V comparable](t *T, e1, e2 V) bool {
	return t.compare("Eq", true, false, e1, e2, assert.Equal(e1, e2))
}

// Neq checks that e1 and e2 are not equal, recording a failure if they are.
func Neq[V comparable](t *T, e1, e2 V) bool {
	return t.compare("Neq", false, false, e1, e2, assert.Equal(e1, e2))
}

// True checks that e is true, recording a failure if it's not.
func True(t *T, e bool) bool {
	return t.single("True", false, e, true)
}

// False checks that e is false, recording a failure if it's not.
func False(t *T, e bool) bool {
	return t.single("False", false, e, false)
}

// AssertEq is like [Eq], but a failure stops the whole run.
func AssertEq[V comparable](t *T, e1, e2 V) bool {
	return t.compare("AssertEq", true, true, e1, e2, assert.Equal(e1, e2))
}

// AssertNeq is like [Neq], but a failure stops the whole run.
func AssertNeq[V comparable](t *T, e1, e2 V) bool {
	return t.compare("AssertNeq", false, true, e1, e2, assert.Equal(e1, e2))
}

// AssertTrue is like [True], but a failure stops the whole run.
func AssertTrue(t *T, e bool) bool {
	return t.single("AssertTrue", true, e, true)
}

// AssertFalse is like [False], but a failure stops the whole run.
func AssertFalse(t *T, e bool) bool {
	return t.single("AssertFalse", true, e, false)
}

// DeepEq checks that e1 and e2 are structurally equal with [assert.DeepEqual].
// This works for slices, maps, and structs that can't be used with [Eq].
func DeepEq[V any](t *T, e1, e2 V) bool {
	return t.compare("DeepEq", true, false, e1, e2, assert.DeepEqual(e1, e2))
}

// AssertDeepEq is like [DeepEq], but a failure stops the whole run.
func AssertDeepEq[V any](t *T, e1, e2 V) bool {
	return t.compare("AssertDeepEq", true, true, e1, e2, assert.DeepEqual(e1, e2))
}

// compare and single must only be called directly from an exported assertion function, because of the caller depth.

func (t *T) compare(fn string, expectEqual, fatal bool, e1, e2 any, equal bool) bool {
	c := assert.Check{
		Compare:     true,
		ExpectEqual: expectEqual,
		Fatal:       fatal,
		Value1:      e1,
		Value2:      e2,
	}
	if !c.Succeeds(equal) {
		c.File, c.Line = callerOf(2)
		c.Text1 = exprText(c, fn, 1, e1)
		c.Text2 = exprText(c, fn, 2, e2)
	}
	return t.evaluate(c, equal)
}

func (t *T) single(fn string, fatal bool, e, want bool) bool {
	c := assert.Check{
		ExpectEqual: true,
		Fatal:       fatal,
		Value1:      e,
		Value2:      want,
		Text2:       assert.Render(want),
	}
	equal := e == want
	if !c.Succeeds(equal) {
		c.File, c.Line = callerOf(2)
		c.Text1 = exprText(c, fn, 1, e)
	}
	return t.evaluate(c, equal)
}

func callerOf(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

// exprText looks up the source text of the argument at index, where index 0 is the *T.
func exprText(c assert.Check, fn string, index int, val any) string {
	if text, ok := assert.ExprText(c.File, c.Line, fn, index); ok {
		return text
	}
	return assert.Render(val)
}
