// Command unitexample shows how a program can carry and run its own tests.
//
// Run it with no arguments to run the tests, or with "list" to see what's registered.
package main

import (
	"github.com/saylorsolutions/unit"
	"github.com/saylorsolutions/unit/cli"
	"math"
	"strings"
)

var _ = unit.Test("fancyname", func(t *unit.T) {
	unit.True(t, true)
	unit.False(t, 4 != 4)
	unit.Eq(t, 42, 42)
	unit.Neq(t, 42, 43)

	if unit.True(t, true) {
		// Only possible if the previous assertion passed.
		unit.Eq(t, math.Sqrt(2)*math.Sqrt(2), 2.0)
	}
})

var _ = unit.Test("strings", func(t *unit.T) {
	unit.Eq(t, strings.ToUpper("unit"), "UNIT")
	unit.DeepEq(t, strings.Fields(" a b  c "), []string{"a", "b", "c"})
})

var _ = unit.Test("floats", func(t *unit.T) {
	unit.Eq(t, 0.1+0.2, 0.3)
	unit.Eq(t, math.Inf(1), math.Inf(1))
	unit.Neq(t, math.Pi, 3.14)
})

func main() {
	cli.Main(unit.Default)
}
