/*
Package unit is a minimal unit test facility for programs that want to carry their own tests, outside of "go test".

Tests are declared with [Test], which captures the file and line of the declaration and registers the test with the [Default] [Registry].
Declaring tests as package level variables makes registration happen during package initialization, before main runs.

	var _ = unit.Test("fancyname", func(t *unit.T) {
		unit.True(t, true)
		unit.False(t, 4 != 4)
		unit.Eq(t, 42, 42)
		unit.Neq(t, 42, 43)

		if unit.True(t, ready()) {
			// Only makes sense to check if the previous assertion passed.
		}
	})

	func main() {
		unit.Main()
	}

Registration order is declaration order within a file, and otherwise follows Go's package initialization order.
If that matters to you, then register tests explicitly from an init function or from main with [Registry.Test].

# Assertions

There are eight assertion functions.
[Eq], [Neq], [True], and [False] record a failure and let the test keep going.
[AssertEq], [AssertNeq], [AssertTrue], and [AssertFalse] stop the whole run when they fail.
[DeepEq] and [AssertDeepEq] are there for values that can't be compared with ==.

A failed assertion writes one line to the test's output, which is STDERR unless [T.SetOutput] has been called.
Floating point values are equal if they're within [assert.Tolerance] of each other.
The literal source text of each argument is included in the line when the source file is still around.

# Running

[Registry.Run] runs each test once in registration order and returns a [Report].
A panic in one test is reported and doesn't stop the others, while a fatal assertion stops everything and is returned as an error matching [assert.ErrFatal].
[Main] and [Registry.RunTests] are the blunt versions of this: a fatal assertion exits the process with status 1.

Tests are never run in parallel.
The output writer isn't synchronized, so don't share one with other goroutines while tests are running.
*/
package unit
