package unit

import (
	"runtime"
	"testing"
)

// nextLine returns the line after the one it's called on.
func nextLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line + 1
}

// stubExit replaces the process exit function for the duration of the test, returning the recorded status.
func stubExit(t *testing.T) *int {
	code := -1
	old := exit
	exit = func(c int) {
		code = c
	}
	t.Cleanup(func() {
		exit = old
	})
	return &code
}
